package pricing

import (
	"math"
	"time"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

// RejectionReason identifies the first gating rule a coupon failed.
type RejectionReason string

const (
	ReasonInactive      RejectionReason = "inactive"
	ReasonExpired       RejectionReason = "expired"
	ReasonUsageExceeded RejectionReason = "usage_exceeded"
	ReasonBelowMinimum  RejectionReason = "below_minimum"
)

type CouponResult struct {
	Eligible       bool            `json:"eligible"`
	DiscountAmount float64         `json:"discount_amount"`
	Reason         RejectionReason `json:"reason,omitempty"`
}

// ValidateCoupon evaluates the gating rules in a fixed order and reports the
// first failure. It never mutates the coupon, so live previews can call it
// any number of times without consuming usage.
func ValidateCoupon(coupon models.Coupon, orderSubtotal float64, now time.Time) CouponResult {
	if !coupon.IsActive {
		return CouponResult{Reason: ReasonInactive}
	}
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return CouponResult{Reason: ReasonExpired}
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return CouponResult{Reason: ReasonExpired}
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return CouponResult{Reason: ReasonUsageExceeded}
	}
	if coupon.MinOrderAmount != nil && orderSubtotal < *coupon.MinOrderAmount {
		return CouponResult{Reason: ReasonBelowMinimum}
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountFixed:
		// never discount below a zero order value
		discount = math.Min(coupon.DiscountValue, orderSubtotal)
	case models.DiscountPercentage:
		discount = orderSubtotal * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
			discount = *coupon.MaxDiscountAmount
		}
	}
	return CouponResult{Eligible: true, DiscountAmount: RoundCents(discount)}
}
