package model

import (
	"errors"
	"net/http"
)

// Error codes
const (
	ErrCodeOrderNotFound      = "ORD001"
	ErrCodeCartEmpty          = "ORD002"
	ErrCodeProductUnavailable = "ORD003"
	ErrCodeInsufficientStock  = "ORD004"
	ErrCodeInvalidStatus      = "ORD005"
	ErrCodeForbidden          = "ORD006"
	ErrCodeInternal           = "ORD500"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product in cart is no longer available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrForbidden          = errors.New("order belongs to another user")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes
func GetHTTPStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return http.StatusNotFound, ErrCodeOrderNotFound
	case errors.Is(err, ErrCartEmpty):
		return http.StatusBadRequest, ErrCodeCartEmpty
	case errors.Is(err, ErrProductUnavailable):
		return http.StatusConflict, ErrCodeProductUnavailable
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusConflict, ErrCodeInsufficientStock
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest, ErrCodeInvalidStatus
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
