package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	companyControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/company"
	couponControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/coupon"
	orderControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/order"
	productcontroller "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/product"
	shippingControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/shipping"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		// ──────────────── Tenants ────────────────
		admin.POST("/companies", companyControllers.CreateCompany(db))
		admin.GET("/companies", companyControllers.ListCompanies(db))
		admin.GET("/companies/:companyID", companyControllers.GetCompany(db))
		admin.PUT("/companies/:companyID", companyControllers.UpdateCompany(db))

		// live order feed for the dashboard
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

		// Everything below is scoped to one tenant. Disabled companies stay
		// manageable here, so the resolver skips the active check.
		scoped := admin.Group("/companies/:companyID")
		scoped.Use(middleware.ResolveCompany(db, false))
		{
			// ──────────────── Catalog ────────────────
			scoped.POST("/products", productcontroller.CreateProduct(db))
			scoped.PUT("/products/:productID", productcontroller.UpdateProduct(db))
			scoped.DELETE("/products/:productID", productcontroller.DeleteProduct(db))
			scoped.POST("/categories", productcontroller.CreateCategory(db))

			// ──────────────── Coupons ────────────────
			scoped.POST("/coupons", couponControllers.CreateCoupon(db))
			scoped.GET("/coupons", couponControllers.ListCoupons(db))
			scoped.PUT("/coupons/:couponID", couponControllers.UpdateCoupon(db))
			scoped.DELETE("/coupons/:couponID", couponControllers.DeleteCoupon(db))

			// ──────────────── Shipping ────────────────
			scoped.POST("/shipping-methods", shippingControllers.CreateShippingMethod(db))
			scoped.GET("/shipping-methods", shippingControllers.ListAllShippingMethods(db))
			scoped.PUT("/shipping-methods/:methodID", shippingControllers.UpdateShippingMethod(db))
			scoped.DELETE("/shipping-methods/:methodID", shippingControllers.DeleteShippingMethod(db))

			// ──────────────── Orders ────────────────
			scoped.GET("/orders", orderControllers.ListOrdersHandler(db))
			scoped.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
			scoped.GET("/orders/:orderID", orderControllers.GetOrderHandler(db))
			scoped.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			scoped.PUT("/orders/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
		}
	}
}
