package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

func ptrI(v int) *int { return &v }

func ptrT(v time.Time) *time.Time { return &v }

func baseCoupon() models.Coupon {
	return models.Coupon{
		Code:          "TEST",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 10,
		IsActive:      true,
	}
}

func TestValidateCoupon_GatingOrder(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mutate   func(*models.Coupon)
		subtotal float64
		reason   RejectionReason
	}{
		{
			name:   "inactive",
			mutate: func(c *models.Coupon) { c.IsActive = false },
			reason: ReasonInactive,
		},
		{
			name:   "not started yet",
			mutate: func(c *models.Coupon) { c.StartsAt = ptrT(now.Add(time.Hour)) },
			reason: ReasonExpired,
		},
		{
			name:   "ended",
			mutate: func(c *models.Coupon) { c.EndsAt = ptrT(now.Add(-time.Hour)) },
			reason: ReasonExpired,
		},
		{
			name: "usage exhausted",
			mutate: func(c *models.Coupon) {
				c.UsageLimit = ptrI(3)
				c.UsedCount = 3
			},
			reason: ReasonUsageExceeded,
		},
		{
			name:     "below minimum",
			mutate:   func(c *models.Coupon) { c.MinOrderAmount = ptrF(100) },
			subtotal: 99.99,
			reason:   ReasonBelowMinimum,
		},
		{
			name: "inactive wins over usage when both fail",
			mutate: func(c *models.Coupon) {
				c.IsActive = false
				c.UsageLimit = ptrI(1)
				c.UsedCount = 1
			},
			reason: ReasonInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := baseCoupon()
			tt.mutate(&coupon)

			subtotal := tt.subtotal
			if subtotal == 0 {
				subtotal = 200
			}
			result := ValidateCoupon(coupon, subtotal, now)
			assert.False(t, result.Eligible)
			assert.Equal(t, 0.0, result.DiscountAmount)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestValidateCoupon_UsageLimitNeverEligibleAtLimit(t *testing.T) {
	coupon := baseCoupon()
	coupon.UsageLimit = ptrI(5)
	coupon.UsedCount = 5

	for _, subtotal := range []float64{0, 0.01, 10, 1000, 1e9} {
		result := ValidateCoupon(coupon, subtotal, time.Now())
		assert.False(t, result.Eligible, "subtotal %v", subtotal)
		assert.Equal(t, ReasonUsageExceeded, result.Reason)
	}
}

func TestValidateCoupon_FixedClampsToSubtotal(t *testing.T) {
	coupon := baseCoupon()
	coupon.DiscountValue = 50

	result := ValidateCoupon(coupon, 30, time.Now())
	assert.True(t, result.Eligible)
	assert.Equal(t, 30.00, result.DiscountAmount)
}

func TestValidateCoupon_PercentageWithAndWithoutCap(t *testing.T) {
	coupon := baseCoupon()
	coupon.DiscountType = models.DiscountPercentage
	coupon.DiscountValue = 20

	result := ValidateCoupon(coupon, 200, time.Now())
	assert.True(t, result.Eligible)
	assert.Equal(t, 40.00, result.DiscountAmount)

	coupon.MaxDiscountAmount = ptrF(30)
	result = ValidateCoupon(coupon, 200, time.Now())
	assert.True(t, result.Eligible)
	assert.Equal(t, 30.00, result.DiscountAmount)
}

func TestValidateCoupon_UnboundedWindowSides(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	coupon := baseCoupon()
	coupon.StartsAt = ptrT(now.Add(-time.Hour))
	result := ValidateCoupon(coupon, 100, now)
	assert.True(t, result.Eligible, "no EndsAt means unbounded on the right")

	coupon = baseCoupon()
	coupon.EndsAt = ptrT(now.Add(time.Hour))
	result = ValidateCoupon(coupon, 100, now)
	assert.True(t, result.Eligible, "no StartsAt means unbounded on the left")
}

func TestValidateCoupon_DoesNotMutate(t *testing.T) {
	coupon := baseCoupon()
	coupon.UsageLimit = ptrI(10)
	coupon.UsedCount = 4

	for i := 0; i < 20; i++ {
		ValidateCoupon(coupon, 100, time.Now())
	}
	assert.Equal(t, 4, coupon.UsedCount, "validation must never consume usage")
}
