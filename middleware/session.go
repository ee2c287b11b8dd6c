package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
)

const sessionContextKey = "session_id"

// ValidateSessionToken checks the bearer token issued at session creation and
// binds the request to its session. When the route carries a :sessionID path
// segment it must match the token's session claim.
func ValidateSessionToken(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		api.Fail(c, http.StatusUnauthorized, api.KindUnauthorized, "session token is missing")
		c.Abort()
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		api.Fail(c, http.StatusUnauthorized, api.KindUnauthorized, "invalid or expired session token")
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, api.KindUnauthorized, "invalid token claims")
		c.Abort()
		return
	}
	sessionID, _ := claims["session_id"].(string)
	if sessionID == "" {
		api.Fail(c, http.StatusUnauthorized, api.KindUnauthorized, "invalid token claims")
		c.Abort()
		return
	}

	if p := c.Param("sessionID"); p != "" && p != sessionID {
		api.Fail(c, http.StatusUnauthorized, api.KindUnauthorized, "token does not match session")
		c.Abort()
		return
	}

	c.Set(sessionContextKey, sessionID)
	c.Next()
}

// SessionIDFrom returns the session bound by ValidateSessionToken.
func SessionIDFrom(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
