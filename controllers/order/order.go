package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

// -------- Request Structs --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusReadyToShip):
		return models.OrderStatusReadyToShip, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusReturned):
		return models.OrderStatusReturned, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// -------- Handlers --------

// GET /admin/companies/:companyID/orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var orders []models.Order
		if err := db.
			Where("company_id = ?", company.ID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch orders")
			return
		}
		api.OK(c, orders)
	}
}

// GET /admin/companies/:companyID/orders/:orderID
//
// Accepts a numeric id or an order number.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)
		id := c.Param("orderID")

		var order models.Order
		query := db.Where("company_id = ?", company.ID).Preload("Items")
		if _, err := strconv.ParseUint(id, 10, 64); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("order_number = ?", id)
		}
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "order not found")
				return
			}
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch order")
			return
		}
		api.OK(c, order)
	}
}

// GET /companies/:companyID/orders/:orderNumber
//
// Shopper-facing lookup, restricted to the session that created the order.
func GetSessionOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)
		sessionID := middleware.SessionIDFrom(c)

		var order models.Order
		err := db.Where("company_id = ? AND session_id = ? AND order_number = ?",
			company.ID, sessionID, c.Param("orderNumber")).
			Preload("Items").
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Fail(c, http.StatusNotFound, api.KindNotFound, "order not found")
				return
			}
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to fetch order")
			return
		}
		api.OK(c, order)
	}
}

// PUT /admin/companies/:companyID/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, err.Error())
			return
		}
		status, err := mapOrderStatus(req.Status)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, err.Error())
			return
		}

		result := db.Model(&models.Order{}).
			Where("company_id = ? AND id = ?", company.ID, c.Param("orderID")).
			Update("status", status)
		if result.Error != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to update order")
			return
		}
		if result.RowsAffected == 0 {
			api.Fail(c, http.StatusNotFound, api.KindNotFound, "order not found")
			return
		}
		api.OKMessage(c, nil, "order status updated")
	}
}

// PUT /admin/companies/:companyID/orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := middleware.CompanyFrom(c)

		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, err.Error())
			return
		}
		status, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.KindValidation, err.Error())
			return
		}

		result := db.Model(&models.Order{}).
			Where("company_id = ? AND id = ?", company.ID, c.Param("orderID")).
			Update("payment_status", status)
		if result.Error != nil {
			api.Fail(c, http.StatusInternalServerError, api.KindInternal, "failed to update order")
			return
		}
		if result.RowsAffected == 0 {
			api.Fail(c, http.StatusNotFound, api.KindNotFound, "order not found")
			return
		}
		api.OKMessage(c, nil, "payment status updated")
	}
}
