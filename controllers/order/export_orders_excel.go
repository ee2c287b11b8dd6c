package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

// GET /admin/companies/:companyID/orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var orders []models.Order
		if err := db.Where("company_id = ?", company.ID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch orders")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to create Excel sheet")
			return
		}

		headers := []string{
			"OrderNumber", "Customer", "Email", "Phone", "City",
			"Subtotal", "Discount", "Tax", "Shipping", "Total",
			"Coupon", "PaymentMethod", "Status", "PaymentStatus", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.CustomerName)
			row.AddCell().SetValue(o.CustomerEmail)
			row.AddCell().SetValue(o.CustomerPhone)
			row.AddCell().SetValue(o.ShippingAddress.City)
			row.AddCell().SetValue(o.Subtotal)
			row.AddCell().SetValue(o.DiscountAmount)
			row.AddCell().SetValue(o.TaxAmount)
			row.AddCell().SetValue(o.ShippingAmount)
			row.AddCell().SetValue(o.TotalAmount)
			if o.CouponCode != nil {
				row.AddCell().SetValue(*o.CouponCode)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to write Excel file")
			return
		}
	}
}
