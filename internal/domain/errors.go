package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups for equipment ids that do not exist.
var ErrNotFound = errors.New("equipment not found")

// ValidationError rejects caller input before it reaches storage.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
