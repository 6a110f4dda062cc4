// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is the root of every domain validation error. The
	// specific sentinels below wrap it so callers can classify any
	// validation failure with a single errors.Is check.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrInvalidPriority is returned when a task priority is not one of
	// the defined values.
	ErrInvalidPriority = fmt.Errorf("%w: invalid task priority", ErrValidation)

	// ErrInvalidStatus is returned when a task status is not one of the
	// defined values.
	ErrInvalidStatus = fmt.Errorf("%w: invalid task status", ErrValidation)

	// ErrInvalidRole is returned when a user role is not one of the
	// defined values.
	ErrInvalidRole = fmt.Errorf("%w: invalid user role", ErrValidation)

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
