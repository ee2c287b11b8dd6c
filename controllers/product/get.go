package productcontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

// GET /companies/:companyID/products
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		switch sortBy {
		case "created_at", "price", "name":
		default:
			sortBy = "created_at"
		}

		query := db.Model(&models.Product{}).
			Where("company_id = ? AND is_active = ?", company.ID, true).
			Preload("Categories").
			Preload("Variants")

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR description ILIKE ? OR sku ILIKE ?",
				likePattern, likePattern, likePattern)
		}
		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid min_price")
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid max_price")
				return
			}
		}
		if categoryID != "" {
			if cid, err := strconv.ParseUint(categoryID, 10, 64); err == nil {
				query = query.
					Joins("JOIN product_categories pc ON pc.product_id = products.id").
					Where("pc.category_id = ?", uint(cid))
			} else {
				api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid category_id")
				return
			}
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Find(&products).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch products")
			return
		}
		api.OK(c, products)
	}
}

// GET /companies/:companyID/products/:productID
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		id, err := strconv.Atoi(c.Param("productID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid product id")
			return
		}

		var product models.Product
		err = db.Where("company_id = ? AND is_active = ?", company.ID, true).
			Preload("Categories").
			Preload("Variants").
			First(&product, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "product not found")
			} else {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to retrieve product")
			}
			return
		}
		api.OK(c, product)
	}
}

// GET /companies/:companyID/categories
func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var categories []models.Category
		if err := db.Where("company_id = ?", company.ID).Order("name ASC").Find(&categories).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch categories")
			return
		}
		api.OK(c, categories)
	}
}
