package models

import "time"

// ShopperSession is an anonymous shopper identity scoping a cart. It is
// distinct from the company tenant and carries no account data.
type ShopperSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"index;not null" json:"company_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
