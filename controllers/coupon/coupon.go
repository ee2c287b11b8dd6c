package couponControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/pricing"
)

type CouponInput struct {
	Code              string     `json:"code" binding:"required"`
	DiscountType      string     `json:"discount_type" binding:"required,oneof=fixed percentage"`
	DiscountValue     float64    `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount    *float64   `json:"min_order_amount"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	UsageLimit        *int       `json:"usage_limit"`
	StartsAt          *time.Time `json:"starts_at"`
	EndsAt            *time.Time `json:"ends_at"`
	IsActive          *bool      `json:"is_active"`
}

type ValidateCouponInput struct {
	Code       string  `json:"code" binding:"required"`
	OrderTotal float64 `json:"order_total" binding:"min=0"`
}

// POST /companies/:companyID/coupons/validate
//
// Read-only preview: reports eligibility and discount without consuming
// usage, so clients can call it on every cart change.
func ValidateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var input ValidateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}

		var coupon models.Coupon
		err := db.Where("company_id = ? AND code = ?", company.ID, models.NormalizeCouponCode(input.Code)).
			First(&coupon).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "coupon not found")
				return
			}
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch coupon")
			return
		}

		api.OK(c, pricing.ValidateCoupon(coupon, input.OrderTotal, time.Now()))
	}
}

// POST /admin/companies/:companyID/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}
		if input.DiscountType == string(models.DiscountPercentage) && input.DiscountValue > 100 {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "percentage discount cannot exceed 100")
			return
		}

		coupon := models.Coupon{
			CompanyID:         company.ID,
			Code:              models.NormalizeCouponCode(input.Code),
			DiscountType:      models.DiscountType(input.DiscountType),
			DiscountValue:     input.DiscountValue,
			MinOrderAmount:    input.MinOrderAmount,
			MaxDiscountAmount: input.MaxDiscountAmount,
			UsageLimit:        input.UsageLimit,
			StartsAt:          input.StartsAt,
			EndsAt:            input.EndsAt,
			IsActive:          true,
		}
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}

		if err := db.Create(&coupon).Error; err != nil {
			api.Fail(c, http.StatusConflict, api.KindValidation, "failed to create coupon, code may already exist")
			return
		}
		api.Created(c, coupon)
	}
}

// GET /admin/companies/:companyID/coupons
func ListCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var coupons []models.Coupon
		if err := db.Where("company_id = ?", company.ID).Order("created_at DESC").Find(&coupons).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch coupons")
			return
		}
		api.OK(c, coupons)
	}
}

// PUT /admin/companies/:companyID/coupons/:couponID
//
// UsedCount is deliberately not editable here; only checkout increments it.
func UpdateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		id, err := strconv.Atoi(c.Param("couponID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid coupon id")
			return
		}

		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}

		var coupon models.Coupon
		if err := db.Where("company_id = ?", company.ID).First(&coupon, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "coupon not found")
			} else {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch coupon")
			}
			return
		}

		coupon.Code = models.NormalizeCouponCode(input.Code)
		coupon.DiscountType = models.DiscountType(input.DiscountType)
		coupon.DiscountValue = input.DiscountValue
		coupon.MinOrderAmount = input.MinOrderAmount
		coupon.MaxDiscountAmount = input.MaxDiscountAmount
		coupon.UsageLimit = input.UsageLimit
		coupon.StartsAt = input.StartsAt
		coupon.EndsAt = input.EndsAt
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}

		if err := db.Save(&coupon).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to update coupon")
			return
		}
		api.OK(c, coupon)
	}
}

// DELETE /admin/companies/:companyID/coupons/:couponID
func DeleteCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		id, err := strconv.Atoi(c.Param("couponID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid coupon id")
			return
		}

		result := db.Where("company_id = ?", company.ID).Delete(&models.Coupon{}, id)
		if result.Error != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to delete coupon")
			return
		}
		if result.RowsAffected == 0 {
			api.Fail(c, http.StatusNotFound, api.KindNotFound, "coupon not found")
			return
		}
		api.OKMessage(c, nil, "coupon deleted")
	}
}
