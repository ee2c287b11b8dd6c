// Package pricing turns a cart snapshot, an optional coupon and an optional
// shipping method into a price summary. Everything here is pure: same inputs,
// same outputs, no datastore access. Consuming coupon usage is the checkout
// transition's job.
package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

// RoundCents rounds to two decimal places. Every monetary figure in a summary
// passes through here exactly once.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// TaxableBase is the single tax-base policy: tax applies to the subtotal
// after discount, never below zero.
func TaxableBase(subtotal, discount float64) float64 {
	base := subtotal - discount
	if base < 0 {
		return 0
	}
	return base
}

// ShippingUnavailableError reports a city the selected method does not serve.
// This is a policy failure, not a zero-cost shipment.
type ShippingUnavailableError struct {
	Method string
	City   string
}

func (e *ShippingUnavailableError) Error() string {
	return fmt.Sprintf("shipping method %q does not serve city %q", e.Method, e.City)
}

type Summary struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	ShippingAmount float64 `json:"shipping_amount"`
	Total          float64 `json:"total"`

	// CouponRejectedReason is set when a coupon was supplied but failed a
	// gating rule, so callers can tell "no coupon" from "coupon rejected".
	CouponRejectedReason RejectionReason `json:"coupon_rejected_reason,omitempty"`
}

// ComputeSummary prices a cart. taxRatePercent is the company's configured
// rate. A rejected coupon zeroes the discount and surfaces its reason in the
// summary; an unserved shipping city fails the whole computation.
func ComputeSummary(items []models.CartItem, coupon *models.Coupon, method *models.ShippingMethod, shippingCity string, taxRatePercent float64, now time.Time) (Summary, error) {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	subtotal = RoundCents(subtotal)

	s := Summary{Subtotal: subtotal}

	if coupon != nil {
		result := ValidateCoupon(*coupon, subtotal, now)
		if result.Eligible {
			s.DiscountAmount = result.DiscountAmount
		} else {
			s.CouponRejectedReason = result.Reason
		}
	}

	if method != nil {
		if !method.ServesCity(shippingCity) {
			return Summary{}, &ShippingUnavailableError{Method: method.Name, City: shippingCity}
		}
		if method.FreeShippingThreshold != nil && subtotal >= *method.FreeShippingThreshold {
			// free at the threshold, boundary inclusive
		} else {
			s.ShippingAmount = RoundCents(method.Cost)
		}
	}

	s.TaxAmount = RoundCents(TaxableBase(subtotal, s.DiscountAmount) * taxRatePercent / 100)

	total := s.Subtotal - s.DiscountAmount + s.TaxAmount + s.ShippingAmount
	if total < 0 {
		total = 0
	}
	s.Total = RoundCents(total)
	return s, nil
}
