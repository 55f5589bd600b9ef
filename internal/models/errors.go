package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrEventNotFound is returned when a mutation references an event
// that does not exist (e.g. adding an attendee to a deleted event).
var ErrEventNotFound = errors.New("event not found")

// ValidationError reports a rejected input field. It is a distinct
// error kind from storage failures so callers can render a field-level
// message instead of a generic one.
type ValidationError struct {
	// Field is the struct field that failed (e.g. "Name").
	Field string

	// Rule is the validation rule that was violated (e.g. "required").
	Rule string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: failed %q", e.Field, e.Rule)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// validate is the shared validator instance for all input structs.
var validate = validator.New()

// validateStruct runs struct-tag validation and converts the first
// failure into a *ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field(), Rule: verrs[0].Tag()}
	}
	return err
}
