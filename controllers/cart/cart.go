package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/catalog"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/pricing"
)

type AddItemInput struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// scoped narrows a query to one session's cart.
func scoped(db *gorm.DB, companyID uint, sessionID string) *gorm.DB {
	return db.Where("company_id = ? AND session_id = ?", companyID, sessionID)
}

// sameLine matches an existing cart line for a (product, variant) tuple.
func sameLine(db *gorm.DB, companyID uint, sessionID string, productID uint, variantID *uint) *gorm.DB {
	q := scoped(db, companyID, sessionID).Where("product_id = ?", productID)
	if variantID != nil {
		return q.Where("variant_id = ?", *variantID)
	}
	return q.Where("variant_id IS NULL")
}

// POST /companies/:companyID/cart/:sessionID/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)
		sessionID := c.Param("sessionID")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}

		snap, err := catalog.PriceAndStock(db, company.ID, input.ProductID, input.VariantID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				api.Fail(c, http.StatusBadRequest, api.KindValidation, "product does not exist")
				return
			}
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to validate product")
			return
		}

		var item models.CartItem
		err = sameLine(db, company.ID, sessionID, input.ProductID, input.VariantID).First(&item).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch cart item")
				return
			}
			if input.Quantity > snap.Stock {
				api.Fail(c, http.StatusBadRequest, api.KindValidation, "quantity exceeds available stock")
				return
			}
			item = models.CartItem{
				CompanyID:   company.ID,
				SessionID:   sessionID,
				ProductID:   snap.ProductID,
				VariantID:   snap.VariantID,
				ProductName: snap.Name,
				SKU:         snap.SKU,
				UnitPrice:   snap.Price,
				Quantity:    input.Quantity,
				AddedAt:     time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to add item to cart")
				return
			}
			item.RefreshLineTotal()
			api.Created(c, item)
			return
		}

		// same (product, variant) tuple: merge quantities instead of adding a
		// second line. AddedAt is kept so listing order stays stable.
		merged := item.Quantity + input.Quantity
		if merged > snap.Stock {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "quantity exceeds available stock")
			return
		}
		item.Quantity = merged
		if err := db.Save(&item).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to update cart item")
			return
		}
		item.RefreshLineTotal()
		api.OK(c, item)
	}
}

// PUT /companies/:companyID/cart/:sessionID/items/:itemID
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)
		sessionID := c.Param("sessionID")

		itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid item id")
			return
		}

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}

		var item models.CartItem
		if err := scoped(db, company.ID, sessionID).First(&item, uint(itemID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "cart item not found")
				return
			}
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch cart item")
			return
		}

		snap, err := catalog.PriceAndStock(db, company.ID, item.ProductID, item.VariantID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				api.Fail(c, http.StatusBadRequest, api.KindValidation, "product is no longer available")
				return
			}
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to validate product")
			return
		}
		if input.Quantity > snap.Stock {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "quantity exceeds available stock")
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to update cart item")
			return
		}
		item.RefreshLineTotal()
		api.OK(c, item)
	}
}

// DELETE /companies/:companyID/cart/:sessionID/items/:itemID
//
// Removal is idempotent: deleting an already-absent item succeeds so clients
// can retry blindly.
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)
		sessionID := c.Param("sessionID")

		itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid item id")
			return
		}

		result := scoped(db, company.ID, sessionID).
			Where("id = ?", uint(itemID)).
			Delete(&models.CartItem{})
		if result.Error != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to delete item")
			return
		}

		api.OKMessage(c, gin.H{"removed": result.RowsAffected > 0}, "cart item removed")
	}
}

// DELETE /companies/:companyID/cart/:sessionID
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)
		sessionID := c.Param("sessionID")

		result := scoped(db, company.ID, sessionID).Delete(&models.CartItem{})
		if result.Error != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to clear cart")
			return
		}

		api.OKMessage(c, gin.H{"removed_count": result.RowsAffected}, "cart cleared")
	}
}

// GET /companies/:companyID/cart/:sessionID
//
// Returns the cart snapshot plus a price preview. Optional query params
// coupon, shipping_method_id and city feed the preview; a rejected coupon
// shows up as coupon_rejected_reason in the summary, not as a request error.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)
		sessionID := c.Param("sessionID")

		var items []models.CartItem
		if err := scoped(db, company.ID, sessionID).
			Order("added_at DESC, id DESC").
			Find(&items).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch cart")
			return
		}

		var coupon *models.Coupon
		if code := c.Query("coupon"); code != "" {
			var cp models.Coupon
			err := db.Where("company_id = ? AND code = ?", company.ID, models.NormalizeCouponCode(code)).
				First(&cp).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					api.Fail(c, http.StatusNotFound, api.KindNotFound, "coupon not found")
					return
				}
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch coupon")
				return
			}
			coupon = &cp
		}

		var method *models.ShippingMethod
		if raw := c.Query("shipping_method_id"); raw != "" {
			methodID, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid shipping_method_id")
				return
			}
			var sm models.ShippingMethod
			err = db.Where("company_id = ? AND is_active = ?", company.ID, true).
				First(&sm, uint(methodID)).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					api.Fail(c, http.StatusNotFound, api.KindNotFound, "shipping method not found")
					return
				}
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch shipping method")
				return
			}
			method = &sm
		}

		summary, err := pricing.ComputeSummary(items, coupon, method, c.Query("city"), company.TaxRate, time.Now())
		if err != nil {
			var unavailable *pricing.ShippingUnavailableError
			if errors.As(err, &unavailable) {
				api.Fail(c, http.StatusUnprocessableEntity, api.KindShippingUnavailable, unavailable.Error())
				return
			}
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to price cart")
			return
		}

		api.OK(c, gin.H{"items": items, "summary": summary})
	}
}
