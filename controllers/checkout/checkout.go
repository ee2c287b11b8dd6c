package checkoutControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	orderControllers "github.com/elhenawymokhtar1/messenger-chat-system-sub000/controllers/order"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/pricing"
)

// -------- Request Structs --------

type CustomerInfo struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type CheckoutRequest struct {
	SessionID        string         `json:"session_id" binding:"required"`
	Customer         CustomerInfo   `json:"customer" binding:"required"`
	ShippingAddress  models.Address `json:"shipping_address" binding:"required"`
	PaymentMethod    string         `json:"payment_method" binding:"required"`
	ShippingMethodID *uint          `json:"shipping_method_id"`
	CouponCode       string         `json:"coupon_code"`
}

// -------- Errors --------

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrCouponNotFound         = errors.New("coupon not found")
	ErrShippingMethodNotFound = errors.New("shipping method not found")
)

// StockUnavailableError names the cart line whose quantity now exceeds the
// live stock.
type StockUnavailableError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *StockUnavailableError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// CouponRejectedError aborts the whole checkout; a rejected coupon never
// silently proceeds at full price.
type CouponRejectedError struct {
	Code   string
	Reason pricing.RejectionReason
}

func (e *CouponRejectedError) Error() string {
	return fmt.Sprintf("coupon %q rejected: %s", e.Code, e.Reason)
}

// -------- Core Logic --------

// Checkout runs the cart → order transition for a session. Validation
// failures (empty cart, stock, coupon, shipping) surface typed errors and
// mutate nothing. A transient persistence failure gets exactly one internal
// retry; the transaction rollback guarantees nothing was written in between.
func Checkout(db *gorm.DB, company models.Company, req CheckoutRequest) (models.Order, error) {
	order, err := runCheckout(db, company, req)
	if err == nil || isValidationFailure(err) {
		return order, err
	}

	order, err = runCheckout(db, company, req)
	if err == nil || isValidationFailure(err) {
		return order, err
	}
	return models.Order{}, fmt.Errorf("checkout persistence failed: %w", err)
}

func isValidationFailure(err error) bool {
	var stockErr *StockUnavailableError
	var couponErr *CouponRejectedError
	var shippingErr *pricing.ShippingUnavailableError
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrCouponNotFound) ||
		errors.Is(err, ErrShippingMethodNotFound) ||
		errors.As(err, &stockErr) ||
		errors.As(err, &couponErr) ||
		errors.As(err, &shippingErr)
}

// forUpdate adds a row lock on dialects that support it; the sqlite test
// database serializes writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func generateOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

func runCheckout(db *gorm.DB, company models.Company, req CheckoutRequest) (models.Order, error) {
	var created models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("company_id = ? AND session_id = ?", company.ID, req.SessionID).
			Order("added_at DESC, id DESC").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// The coupon row is locked before validation so two concurrent
		// checkouts cannot over-consume a usage-limited code.
		var coupon *models.Coupon
		if req.CouponCode != "" {
			var cp models.Coupon
			err := forUpdate(tx).
				Where("company_id = ? AND code = ?", company.ID, models.NormalizeCouponCode(req.CouponCode)).
				First(&cp).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCouponNotFound
				}
				return err
			}
			coupon = &cp
		}

		var method *models.ShippingMethod
		if req.ShippingMethodID != nil {
			var sm models.ShippingMethod
			err := tx.Where("company_id = ? AND is_active = ?", company.ID, true).
				First(&sm, *req.ShippingMethodID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrShippingMethodNotFound
				}
				return err
			}
			method = &sm
		}

		// Re-validate every line against live stock, locking the rows for
		// the decrement. Earlier cart-time checks are not trusted.
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			var product models.Product
			err := forUpdate(tx).Where("company_id = ?", company.ID).
				First(&product, item.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &StockUnavailableError{ProductName: item.ProductName, Requested: item.Quantity}
				}
				return err
			}

			available := product.Stock
			var variant *models.ProductVariant
			if item.VariantID != nil {
				var v models.ProductVariant
				err := forUpdate(tx).Where("product_id = ?", product.ID).
					First(&v, *item.VariantID).Error
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return &StockUnavailableError{ProductName: item.ProductName, Requested: item.Quantity}
					}
					return err
				}
				variant = &v
				available = v.Stock
			}

			if available < item.Quantity {
				return &StockUnavailableError{
					ProductName: item.ProductName,
					Requested:   item.Quantity,
					Available:   available,
				}
			}

			if variant != nil {
				variant.Stock -= item.Quantity
				if err := tx.Save(variant).Error; err != nil {
					return err
				}
			} else {
				product.Stock -= item.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID:   item.ProductID,
				VariantID:   item.VariantID,
				ProductName: item.ProductName,
				SKU:         item.SKU,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
				LineTotal:   pricing.RoundCents(item.UnitPrice * float64(item.Quantity)),
			})
		}

		now := time.Now()
		summary, err := pricing.ComputeSummary(items, coupon, method, req.ShippingAddress.City, company.TaxRate, now)
		if err != nil {
			return err
		}

		if coupon != nil {
			if summary.CouponRejectedReason != "" {
				return &CouponRejectedError{Code: coupon.Code, Reason: summary.CouponRejectedReason}
			}
			coupon.UsedCount++
			if err := tx.Save(coupon).Error; err != nil {
				return err
			}
		}

		order := models.Order{
			OrderNumber:     generateOrderNumber(),
			CompanyID:       company.ID,
			SessionID:       req.SessionID,
			CustomerName:    req.Customer.Name,
			CustomerEmail:   req.Customer.Email,
			CustomerPhone:   req.Customer.Phone,
			ShippingAddress: req.ShippingAddress,
			Items:           orderItems,
			Subtotal:        summary.Subtotal,
			DiscountAmount:  summary.DiscountAmount,
			TaxAmount:       summary.TaxAmount,
			ShippingAmount:  summary.ShippingAmount,
			TotalAmount:     summary.Total,
			PaymentMethod:   req.PaymentMethod,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			CreatedAt:       now,
		}
		if coupon != nil {
			code := coupon.Code
			order.CouponCode = &code
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clearing the cart is the final step of a successful checkout and
		// rolls back with everything else.
		if err := tx.Where("company_id = ? AND session_id = ?", company.ID, req.SessionID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		created = order
		return nil
	})
	return created, err
}

// -------- Handlers --------

// POST /companies/:companyID/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}
		if sid := middleware.SessionIDFrom(c); sid != "" && sid != req.SessionID {
			api.Fail(c, http.StatusUnauthorized, api.KindUnauthorized, "token does not match session")
			return
		}

		order, err := Checkout(db, company, req)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}

		orderControllers.BroadcastNewOrder(order)
		api.Created(c, order)
	}
}

func writeCheckoutError(c *gin.Context, err error) {
	var stockErr *StockUnavailableError
	var couponErr *CouponRejectedError
	var shippingErr *pricing.ShippingUnavailableError

	switch {
	case errors.Is(err, ErrEmptyCart):
		api.Fail(c, http.StatusBadRequest, api.KindEmptyCart, err.Error())
	case errors.Is(err, ErrCouponNotFound):
		api.Fail(c, http.StatusNotFound, api.KindNotFound, err.Error())
	case errors.Is(err, ErrShippingMethodNotFound):
		api.Fail(c, http.StatusNotFound, api.KindNotFound, err.Error())
	case errors.As(err, &stockErr):
		api.Fail(c, http.StatusConflict, api.KindStockUnavailable, stockErr.Error())
	case errors.As(err, &couponErr):
		api.FailReason(c, http.StatusUnprocessableEntity, api.KindCouponRejected, couponErr.Error(), string(couponErr.Reason))
	case errors.As(err, &shippingErr):
		api.Fail(c, http.StatusUnprocessableEntity, api.KindShippingUnavailable, shippingErr.Error())
	default:
		api.Fail(c, http.StatusInternalServerError, api.KindCheckoutFailed, "checkout failed, it is safe to retry")
	}
}
