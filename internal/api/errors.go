package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/userdir-api/internal/store"
)

// MapErrorToStatusCode maps store errors to appropriate HTTP status codes.
// This prevents leaking internal error types or messages to clients.
// Duplicate email reports 400 rather than 409; that status is part of the
// external contract.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case store.IsNotFoundError(err):
		return msgUserNotFound

	case store.IsDuplicateError(err):
		return msgEmailAlreadyExists

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid user data"

	default:
		return "An unexpected error occurred"
	}
}
