package model

import (
	"errors"
	"net/http"
)

// Error codes
const (
	ErrCodeProductNotFound   = "PRD001"
	ErrCodeDuplicateSlug     = "PRD002"
	ErrCodeInvalidSlug       = "PRD003"
	ErrCodeCategoryNotFound  = "PRD004"
	ErrCodeProductInUse      = "PRD005"
	ErrCodeInvalidPrice      = "PRD006"
	ErrCodeInvalidWeightUnit = "PRD007"
	ErrCodeInvalidImage      = "PRD008"
	ErrCodeInternal          = "PRD500"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateSlug     = errors.New("product slug already exists")
	ErrInvalidSlug       = errors.New("must contain only lowercase letters, numbers and hyphens")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductInUse      = errors.New("product is referenced by orders")
	ErrInvalidPrice      = errors.New("price must be between 0 and 99999999.99 with at most 2 decimals")
	ErrInvalidWeightUnit = errors.New("weight unit must be one of kg, g, l, ml, pcs")
	ErrInvalidImage      = errors.New("invalid product image")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes
func GetHTTPStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound, ErrCodeProductNotFound
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusNotFound, ErrCodeCategoryNotFound
	case errors.Is(err, ErrDuplicateSlug):
		return http.StatusConflict, ErrCodeDuplicateSlug
	case errors.Is(err, ErrProductInUse):
		return http.StatusConflict, ErrCodeProductInUse
	case errors.Is(err, ErrInvalidSlug):
		return http.StatusBadRequest, ErrCodeInvalidSlug
	case errors.Is(err, ErrInvalidPrice):
		return http.StatusBadRequest, ErrCodeInvalidPrice
	case errors.Is(err, ErrInvalidWeightUnit):
		return http.StatusBadRequest, ErrCodeInvalidWeightUnit
	case errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest, ErrCodeInvalidImage
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
