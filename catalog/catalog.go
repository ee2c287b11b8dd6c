// Package catalog exposes the one read the cart and checkout need from the
// product tables: a live price/stock/name snapshot for a product or one of
// its variants. Results must not be cached across requests.
package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

var ErrNotFound = errors.New("product not found")

type Snapshot struct {
	ProductID uint
	VariantID *uint
	Name      string
	SKU       string
	Price     float64
	Stock     int
}

// PriceAndStock loads the current price and stock for a company's product,
// or for one of its variants when variantID is set. Variant price falls back
// to the product price when the variant has none.
func PriceAndStock(db *gorm.DB, companyID, productID uint, variantID *uint) (Snapshot, error) {
	var product models.Product
	err := db.Where("company_id = ? AND is_active = ?", companyID, true).
		First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}

	snap := Snapshot{
		ProductID: product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		Price:     product.Price,
		Stock:     product.Stock,
	}
	if variantID == nil {
		return snap, nil
	}

	var variant models.ProductVariant
	err = db.Where("product_id = ?", product.ID).First(&variant, *variantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}

	id := variant.ID
	snap.VariantID = &id
	snap.Stock = variant.Stock
	if variant.Name != "" {
		snap.Name = product.Name + " - " + variant.Name
	}
	if variant.SKU != "" {
		snap.SKU = variant.SKU
	}
	if variant.Price > 0 {
		snap.Price = variant.Price
	}
	return snap, nil
}
