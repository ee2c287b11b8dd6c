package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	SKU         *string  `json:"sku"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"is_active"`
}

// PUT /admin/companies/:companyID/products/:productID
//
// Partial update: only the fields present in the body change.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		id, err := strconv.Atoi(c.Param("productID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid product id")
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}
		if input.Price != nil && *input.Price <= 0 {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "price must be positive")
			return
		}
		if input.Stock != nil && *input.Stock < 0 {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "stock must not be negative")
			return
		}

		var product models.Product
		if err := db.Where("company_id = ?", company.ID).First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "product not found")
			} else {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch product")
			}
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.SKU != nil {
			product.SKU = *input.SKU
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}

		if err := db.Save(&product).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to update product")
			return
		}
		api.OK(c, product)
	}
}
