package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the store-facing and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public storefront routes (company-scoped, session-token-protected
	// where they touch a cart)
	SetupStoreRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
