package goal

import (
	"errors"
	"fmt"
)

var (
	ErrGoalNotFound       = errors.New("goal not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrQuotaExceeded      = errors.New("active goal quota exceeded")
	ErrInvalidID          = errors.New("invalid id format")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// ValidationError names the offending field so clients can correct input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
