package companyControllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type CompanyInput struct {
	Name    string   `json:"name" binding:"required"`
	Slug    string   `json:"slug" binding:"required"`
	TaxRate *float64 `json:"tax_rate"`
}

// POST /admin/companies
func CreateCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CompanyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}
		if !slugPattern.MatchString(input.Slug) {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "slug must be lowercase letters, digits and hyphens")
			return
		}
		if input.TaxRate != nil && (*input.TaxRate < 0 || *input.TaxRate > 100) {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "tax_rate must be between 0 and 100")
			return
		}

		company := models.Company{Name: input.Name, Slug: input.Slug, IsActive: true}
		if input.TaxRate != nil {
			company.TaxRate = *input.TaxRate
		}

		if err := db.Create(&company).Error; err != nil {
			api.Fail(c, http.StatusConflict, api.KindValidation, "failed to create company, slug may already exist")
			return
		}
		api.Created(c, company)
	}
}

// GET /admin/companies
func ListCompanies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var companies []models.Company
		if err := db.Order("created_at DESC").Find(&companies).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch companies")
			return
		}
		api.OK(c, companies)
	}
}

// GET /admin/companies/:companyID
func GetCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("companyID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid company id")
			return
		}

		var company models.Company
		if err := db.First(&company, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "company not found")
			} else {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch company")
			}
			return
		}
		api.OK(c, company)
	}
}

type UpdateCompanyInput struct {
	Name     *string  `json:"name"`
	TaxRate  *float64 `json:"tax_rate"`
	IsActive *bool    `json:"is_active"`
}

// PUT /admin/companies/:companyID
func UpdateCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("companyID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid company id")
			return
		}

		var input UpdateCompanyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid input: "+err.Error())
			return
		}
		if input.TaxRate != nil && (*input.TaxRate < 0 || *input.TaxRate > 100) {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "tax_rate must be between 0 and 100")
			return
		}

		var company models.Company
		if err := db.First(&company, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "company not found")
			} else {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch company")
			}
			return
		}

		if input.Name != nil {
			company.Name = *input.Name
		}
		if input.TaxRate != nil {
			company.TaxRate = *input.TaxRate
		}
		if input.IsActive != nil {
			company.IsActive = *input.IsActive
		}

		if err := db.Save(&company).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to update company")
			return
		}
		api.OK(c, company)
	}
}
