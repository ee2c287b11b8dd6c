package models

import (
	"strings"
	"time"
)

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Coupon is a named discount rule. Codes are stored uppercased and are unique
// per company. UsedCount is only ever incremented inside the checkout
// transaction, never by validation.
type Coupon struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	CompanyID         uint         `gorm:"uniqueIndex:idx_coupons_company_code" json:"company_id"`
	Code              string       `gorm:"uniqueIndex:idx_coupons_company_code;not null" json:"code"`
	DiscountType      DiscountType `gorm:"type:VARCHAR(20);not null" json:"discount_type"`
	DiscountValue     float64      `gorm:"not null" json:"discount_value"`
	MinOrderAmount    *float64     `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *float64     `json:"max_discount_amount,omitempty"`
	UsageLimit        *int         `json:"usage_limit,omitempty"`
	UsedCount         int          `gorm:"default:0" json:"used_count"`
	StartsAt          *time.Time   `json:"starts_at,omitempty"`
	EndsAt            *time.Time   `json:"ends_at,omitempty"`
	IsActive          bool         `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// NormalizeCouponCode uppercases a code for storage and lookup so matching is
// case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
