package model

import (
	"errors"
	"net/http"
)

// Error codes
const (
	ErrCodeCategoryNotFound = "CAT001"
	ErrCodeDuplicateSlug    = "CAT002"
	ErrCodeInvalidSlug      = "CAT003"
	ErrCodeInvalidImage     = "CAT004"
	ErrCodeCategoryInUse    = "CAT005"
	ErrCodeInternal         = "CAT500"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSlug    = errors.New("category slug already exists")
	ErrInvalidSlug      = errors.New("must contain only lowercase letters, numbers and hyphens")
	ErrInvalidImage     = errors.New("invalid category image")
	ErrCategoryInUse    = errors.New("category has products referenced by orders")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes
func GetHTTPStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusNotFound, ErrCodeCategoryNotFound
	case errors.Is(err, ErrDuplicateSlug):
		return http.StatusConflict, ErrCodeDuplicateSlug
	case errors.Is(err, ErrInvalidSlug):
		return http.StatusBadRequest, ErrCodeInvalidSlug
	case errors.Is(err, ErrCategoryInUse):
		return http.StatusConflict, ErrCodeCategoryInUse
	case errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest, ErrCodeInvalidImage
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
