package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/auth"
	cartControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/cart"
	checkoutControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/checkout"
	couponControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/coupon"
	orderControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/order"
	productcontroller "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/product"
	shippingControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/shipping"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
)

// SetupStoreRoutes registers all shopper-facing "/companies/:companyID/*"
// endpoints.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	company := r.Group("/companies/:companyID")
	company.Use(middleware.ResolveCompany(db, true))
	{
		// ──────────────── Sessions ────────────────
		company.POST("/sessions", auth.CreateSession(db))

		// ──────────────── Browse Catalog ────────────────
		company.GET("/products", productcontroller.ListProducts(db))
		company.GET("/products/:productID", productcontroller.GetProduct(db))
		company.GET("/categories", productcontroller.ListCategories(db))
		company.GET("/shipping-methods", shippingControllers.ListShippingMethods(db))

		// ──────────────── Coupon Preview ────────────────
		company.POST("/coupons/validate", couponControllers.ValidateCoupon(db))

		// ──────────────── Shopping Cart ────────────────
		cart := company.Group("/cart/:sessionID")
		cart.Use(middleware.ValidateSessionToken)
		{
			cart.GET("", cartControllers.GetCart(db))
			cart.POST("/items", cartControllers.AddCartItem(db))
			cart.PUT("/items/:itemID", cartControllers.UpdateCartItem(db))
			cart.DELETE("/items/:itemID", cartControllers.RemoveCartItem(db))
			cart.DELETE("", cartControllers.ClearCart(db))
		}

		// ──────────────── Checkout & Orders ────────────────
		company.POST("/checkout", middleware.ValidateSessionToken, checkoutControllers.CheckoutHandler(db))
		company.GET("/orders/:orderNumber", middleware.ValidateSessionToken, orderControllers.GetSessionOrderHandler(db))
	}
}
