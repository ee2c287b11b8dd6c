// Package api defines the JSON response envelope and the machine-readable
// error taxonomy. Clients branch on error.kind, never on message text.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorKind string

const (
	KindValidation          ErrorKind = "ValidationError"
	KindNotFound            ErrorKind = "NotFoundError"
	KindStockUnavailable    ErrorKind = "StockUnavailableError"
	KindCouponRejected      ErrorKind = "CouponRejectedError"
	KindShippingUnavailable ErrorKind = "ShippingUnavailable"
	KindEmptyCart           ErrorKind = "EmptyCartError"
	KindCheckoutFailed      ErrorKind = "CheckoutFailedError"
	KindUnauthorized        ErrorKind = "UnauthorizedError"
	KindInternal            ErrorKind = "InternalError"
)

type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Reason  string    `json:"reason,omitempty"`
}

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func OKMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func Fail(c *gin.Context, status int, kind ErrorKind, message string) {
	c.JSON(status, Response{Success: false, Error: &Error{Kind: kind, Message: message}})
}

// FailReason is Fail with the coupon rejection reason attached.
func FailReason(c *gin.Context, status int, kind ErrorKind, message, reason string) {
	c.JSON(status, Response{Success: false, Error: &Error{Kind: kind, Message: message, Reason: reason}})
}
