package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

type VariantInput struct {
	Name  string  `json:"name" binding:"required"`
	SKU   string  `json:"sku"`
	Price float64 `json:"price" binding:"min=0"`
	Stock int     `json:"stock" binding:"min=0"`
}

type CreateProductInput struct {
	Name        string         `json:"name" binding:"required"`
	SKU         string         `json:"sku"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	Stock       int            `json:"stock" binding:"min=0"`
	CategoryIDs []uint         `json:"category_ids"`
	Variants    []VariantInput `json:"variants"`
}

// POST /admin/companies/:companyID/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}

		product := models.Product{
			CompanyID:   company.ID,
			Name:        input.Name,
			SKU:         input.SKU,
			Description: input.Description,
			Price:       input.Price,
			Stock:       input.Stock,
			IsActive:    true,
		}
		for _, v := range input.Variants {
			product.Variants = append(product.Variants, models.ProductVariant{
				Name:  v.Name,
				SKU:   v.SKU,
				Price: v.Price,
				Stock: v.Stock,
			})
		}

		if len(input.CategoryIDs) > 0 {
			var categories []models.Category
			if err := db.Where("company_id = ? AND id IN ?", company.ID, input.CategoryIDs).
				Find(&categories).Error; err != nil {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to resolve categories")
				return
			}
			if len(categories) != len(input.CategoryIDs) {
				api.Fail(c, http.StatusBadRequest, api.KindValidation, "unknown category id")
				return
			}
			product.Categories = categories
		}

		if err := db.Create(&product).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to create product")
			return
		}
		api.Created(c, product)
	}
}

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// POST /admin/companies/:companyID/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var input CreateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}

		category := models.Category{CompanyID: company.ID, Name: input.Name}
		if err := db.Create(&category).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to create category")
			return
		}
		api.Created(c, category)
	}
}
