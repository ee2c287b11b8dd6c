package shippingControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

type ShippingMethodInput struct {
	Name                  string   `json:"name" binding:"required"`
	Cost                  float64  `json:"cost" binding:"min=0"`
	FreeShippingThreshold *float64 `json:"free_shipping_threshold"`
	EstimatedDaysMin      int      `json:"estimated_days_min" binding:"min=0"`
	EstimatedDaysMax      int      `json:"estimated_days_max" binding:"min=0"`
	AvailableCities       []string `json:"available_cities"`
	IsActive              *bool    `json:"is_active"`
}

// GET /companies/:companyID/shipping-methods
//
// Optional ?city= filters to methods serving that city.
func ListShippingMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var methods []models.ShippingMethod
		if err := db.Where("company_id = ? AND is_active = ?", company.ID, true).
			Order("cost ASC").
			Find(&methods).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch shipping methods")
			return
		}

		if city := c.Query("city"); city != "" {
			served := methods[:0]
			for _, m := range methods {
				if m.ServesCity(city) {
					served = append(served, m)
				}
			}
			methods = served
		}
		api.OK(c, methods)
	}
}

// POST /admin/companies/:companyID/shipping-methods
func CreateShippingMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var input ShippingMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}
		if input.EstimatedDaysMax < input.EstimatedDaysMin {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "estimated_days_max must not be below estimated_days_min")
			return
		}

		method := models.ShippingMethod{
			CompanyID:             company.ID,
			Name:                  input.Name,
			Cost:                  input.Cost,
			FreeShippingThreshold: input.FreeShippingThreshold,
			EstimatedDaysMin:      input.EstimatedDaysMin,
			EstimatedDaysMax:      input.EstimatedDaysMax,
			AvailableCities:       pq.StringArray(input.AvailableCities),
			IsActive:              true,
		}
		if input.IsActive != nil {
			method.IsActive = *input.IsActive
		}

		if err := db.Create(&method).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to create shipping method")
			return
		}
		api.Created(c, method)
	}
}

// GET /admin/companies/:companyID/shipping-methods
func ListAllShippingMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var methods []models.ShippingMethod
		if err := db.Where("company_id = ?", company.ID).Order("created_at DESC").Find(&methods).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch shipping methods")
			return
		}
		api.OK(c, methods)
	}
}

// PUT /admin/companies/:companyID/shipping-methods/:methodID
func UpdateShippingMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		id, err := strconv.Atoi(c.Param("methodID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid shipping method id")
			return
		}

		var input ShippingMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}

		var method models.ShippingMethod
		if err := db.Where("company_id = ?", company.ID).First(&method, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "shipping method not found")
			} else {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch shipping method")
			}
			return
		}

		method.Name = input.Name
		method.Cost = input.Cost
		method.FreeShippingThreshold = input.FreeShippingThreshold
		method.EstimatedDaysMin = input.EstimatedDaysMin
		method.EstimatedDaysMax = input.EstimatedDaysMax
		method.AvailableCities = pq.StringArray(input.AvailableCities)
		if input.IsActive != nil {
			method.IsActive = *input.IsActive
		}

		if err := db.Save(&method).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to update shipping method")
			return
		}
		api.OK(c, method)
	}
}

// DELETE /admin/companies/:companyID/shipping-methods/:methodID
func DeleteShippingMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		id, err := strconv.Atoi(c.Param("methodID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid shipping method id")
			return
		}

		result := db.Where("company_id = ?", company.ID).Delete(&models.ShippingMethod{}, id)
		if result.Error != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to delete shipping method")
			return
		}
		if result.RowsAffected == 0 {
			api.Fail(c, http.StatusNotFound, api.KindNotFound, "shipping method not found")
			return
		}
		api.OKMessage(c, nil, "shipping method deleted")
	}
}
