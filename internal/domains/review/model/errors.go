package model

import (
	"errors"
	"net/http"
)

// Error codes
const (
	ErrCodeReviewNotFound  = "REV001"
	ErrCodeAlreadyReviewed = "REV002"
	ErrCodeProductNotFound = "REV003"
	ErrCodeForbidden       = "REV004"
	ErrCodeInternal        = "REV500"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
	ErrProductNotFound = errors.New("product not found")
	ErrForbidden       = errors.New("review belongs to another user")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes
func GetHTTPStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrReviewNotFound):
		return http.StatusNotFound, ErrCodeReviewNotFound
	case errors.Is(err, ErrAlreadyReviewed):
		return http.StatusConflict, ErrCodeAlreadyReviewed
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound, ErrCodeProductNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
