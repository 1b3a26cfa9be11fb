package model

import (
	"errors"
	"net/http"
)

// Error codes
const (
	ErrCodeProductNotFound   = "CRT001"
	ErrCodeInsufficientStock = "CRT002"
	ErrCodeInvalidQuantity   = "CRT003"
	ErrCodeSessionMissing    = "CRT004"
	ErrCodeInternal          = "CRT500"
)

const (
	MinQuantity = 1
	MaxQuantity = 100
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("not enough stock for requested quantity")
	ErrInvalidQuantity   = errors.New("quantity must be between 1 and 100")
	ErrSessionMissing    = errors.New("session not available")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes
func GetHTTPStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound, ErrCodeProductNotFound
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusConflict, ErrCodeInsufficientStock
	case errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest, ErrCodeInvalidQuantity
	case errors.Is(err, ErrSessionMissing):
		return http.StatusInternalServerError, ErrCodeSessionMissing
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
