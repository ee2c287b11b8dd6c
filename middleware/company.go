package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

const companyContextKey = "company"

// ResolveCompany loads the :companyID tenant and puts it on the context.
// Store routes require an active company; admin routes pass requireActive
// false so a disabled tenant can still be managed.
func ResolveCompany(db *gorm.DB, requireActive bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("companyID"), 10, 64)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid company id")
			c.Abort()
			return
		}

		var company models.Company
		if err := db.First(&company, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "company not found")
			} else {
				api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to load company")
			}
			c.Abort()
			return
		}
		if requireActive && !company.IsActive {
			api.Fail(c, http.StatusForbidden, api.KindUnauthorized, "company is disabled")
			c.Abort()
			return
		}

		c.Set(companyContextKey, company)
		c.Next()
	}
}

// CompanyFrom returns the tenant resolved by ResolveCompany.
func CompanyFrom(c *gin.Context) models.Company {
	v, _ := c.Get(companyContextKey)
	company, _ := v.(models.Company)
	return company
}
