package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
)

// ValidateAPIKey guards the admin surface with the ADMIN_API_KEY env value.
func ValidateAPIKey(c *gin.Context) {
	apiKey := c.GetHeader("X-API-KEY")
	if apiKey == "" || apiKey != os.Getenv("ADMIN_API_KEY") {
		api.Fail(c, http.StatusUnauthorized, api.KindUnauthorized, "invalid or missing API key")
		c.Abort()
		return
	}
	c.Next()
}
