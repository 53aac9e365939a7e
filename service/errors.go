package service

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden marks a role or field-policy violation.
	ErrForbidden = errors.New("access denied")

	// ErrValidation marks a malformed field: bad email, past due date or an
	// invalid enum value. Wrap it with details via Validationf.
	ErrValidation = errors.New("validation failed")
)

// Validationf builds a validation error carrying the field detail.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
