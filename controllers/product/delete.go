package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

// DELETE /admin/companies/:companyID/products/:productID
//
// Soft delete (gorm.DeletedAt), so order history keeps resolving product ids.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		id, err := strconv.Atoi(c.Param("productID"))
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, "invalid product id")
			return
		}

		result := db.Where("company_id = ?", company.ID).Delete(&models.Product{}, id)
		if result.Error != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to delete product")
			return
		}
		if result.RowsAffected == 0 {
			api.Fail(c, http.StatusNotFound, api.KindNotFound, "product not found")
			return
		}
		api.OKMessage(c, nil, "product deleted")
	}
}
