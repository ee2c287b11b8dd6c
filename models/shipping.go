package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type ShippingMethod struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `gorm:"index" json:"company_id"`
	Name      string  `gorm:"not null" json:"name"`
	Cost      float64 `json:"cost"`
	// FreeShippingThreshold waives Cost when the order subtotal reaches it,
	// boundary inclusive.
	FreeShippingThreshold *float64       `json:"free_shipping_threshold,omitempty"`
	EstimatedDaysMin      int            `json:"estimated_days_min"`
	EstimatedDaysMax      int            `json:"estimated_days_max"`
	AvailableCities       pq.StringArray `gorm:"type:text[]" json:"available_cities"`
	IsActive              bool           `gorm:"default:true" json:"is_active"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// ServesCity reports whether the method delivers to city. An empty city list
// means the method serves everywhere.
func (m ShippingMethod) ServesCity(city string) bool {
	if len(m.AvailableCities) == 0 {
		return true
	}
	for _, c := range m.AvailableCities {
		if strings.EqualFold(c, city) {
			return true
		}
	}
	return false
}
