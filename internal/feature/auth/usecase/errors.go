// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a required field (username or password) is missing or empty.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPasswordTooLong is returned by registration for a password bcrypt cannot hash (over 72 bytes).
	ErrPasswordTooLong = fmt.Errorf("%w: password exceeds 72 bytes", ErrInvalidInput)

	// ErrDuplicateUsername is returned when attempting to create a user whose username already exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned by login for both an unknown username and a wrong password.
	// Callers must not be able to tell the two cases apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
