package model

import (
	"errors"
	"net/http"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeUsernameTaken      = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeInternal           = "USR500"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes
func GetHTTPStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, ErrCodeUserNotFound
	case errors.Is(err, ErrUsernameTaken):
		return http.StatusConflict, ErrCodeUsernameTaken
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeInvalidCredentials
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
