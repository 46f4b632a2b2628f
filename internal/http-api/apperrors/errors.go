// Package apperrors holds the error taxonomy shared by all services.
// Services wrap these sentinels with %w and context; handlers map them to
// HTTP status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrValidation covers malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers references to absent entities.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers uniqueness violations, including storage-level
	// duplicate-key errors translated by the repositories.
	ErrConflict = errors.New("already exists")
	// ErrPermission covers authenticated callers without sufficient
	// role or ownership.
	ErrPermission = errors.New("permission denied")
	// ErrAuthentication covers missing or invalid tokens.
	ErrAuthentication = errors.New("authentication required")
	// ErrInvalidCredentials covers confirmation-code mismatches.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
