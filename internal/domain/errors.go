// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyUserID is returned when a user has no ID assigned.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrEmptyName is returned when a user's name is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyEmail is returned when a user's email is empty.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")
)
