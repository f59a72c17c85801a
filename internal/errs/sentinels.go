// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/handler layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrParkNotFound indicates a species write referenced a park that does not exist.
	ErrParkNotFound = errors.New("referenced park does not exist")

	// ErrConflict indicates the operation is blocked by dependent records.
	ErrConflict = errors.New("conflict with dependent records")

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized indicates a missing or unverifiable identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated principal lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates rejected input.
	ErrValidation = errors.New("validation failed")
)
