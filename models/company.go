package models

import "time"

// Company is a storefront tenant. Every catalog, cart, coupon and order row
// is scoped to exactly one company.
type Company struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	// TaxRate is the percentage applied to the taxable base (subtotal after
	// discount) when pricing a cart or checkout.
	TaxRate   float64   `gorm:"default:0" json:"tax_rate"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
