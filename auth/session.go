package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

const sessionTTL = 30 * 24 * time.Hour

// POST /companies/:companyID/sessions
func CreateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		sessionID := "sess_" + generateRandomString(16)
		session := models.ShopperSession{
			ID:        sessionID,
			CompanyID: company.ID,
			ExpiresAt: time.Now().Add(sessionTTL),
		}
		if err := db.Create(&session).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to create session")
			return
		}

		token, err := issueSessionToken(sessionID, company.ID, session.ExpiresAt)
		if err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "token generation failed")
			return
		}

		api.Created(c, gin.H{
			"session_id": sessionID,
			"token":      token,
			"expires_at": session.ExpiresAt,
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_session"
	}
	return hex.EncodeToString(bytes)
}

func issueSessionToken(sessionID string, companyID uint, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"company_id": companyID,
		"exp":        expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
