package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one product+variant line in a session's cart. Name, SKU and
// unit price are snapshots taken when the line was first added.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"index:idx_cart_items_scope" json:"company_id"`
	SessionID   string    `gorm:"index:idx_cart_items_scope" json:"session_id"`
	ProductID   uint      `json:"product_id"`
	VariantID   *uint     `json:"variant_id,omitempty"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`

	// LineTotal is derived from UnitPrice and Quantity on every read. It is
	// never stored, so the two can not drift apart.
	LineTotal float64 `gorm:"-" json:"line_total"`
}

func (i *CartItem) RefreshLineTotal() {
	i.LineTotal = i.UnitPrice * float64(i.Quantity)
}

func (i *CartItem) AfterFind(*gorm.DB) error {
	i.RefreshLineTotal()
	return nil
}
