package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID   uint             `gorm:"index;not null" json:"company_id"`
	Name        string           `gorm:"not null" json:"name"`
	SKU         string           `gorm:"index" json:"sku"`
	Description string           `json:"description"`
	Price       float64          `gorm:"not null" json:"price"`
	Stock       int              `json:"stock"`
	IsActive    bool             `gorm:"default:true" json:"is_active"`
	Categories  []Category       `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant overrides price and stock for one sellable variation of a
// product. A zero Price means the variant sells at the product price.
type ProductVariant struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID uint    `gorm:"index" json:"product_id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

type Category struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CompanyID uint   `gorm:"index" json:"company_id"`
	Name      string `gorm:"not null" json:"name"`
}
