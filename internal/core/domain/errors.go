package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match them with errors.Is; the HTTP layer maps each
// kind to a status code.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrTransient          = errors.New("temporarily unavailable")
)

var (
	ErrListingNotFound = fmt.Errorf("listing %w", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	ErrNoSession       = fmt.Errorf("session %w", ErrNotFound)
	ErrKeyNotFound     = fmt.Errorf("key %w", ErrNotFound)

	ErrEmailTaken  = fmt.Errorf("email %w", ErrConflict)
	ErrIDCollision = fmt.Errorf("listing id %w", ErrConflict)
)

// Invalid wraps ErrValidation with a description of the offending input.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
