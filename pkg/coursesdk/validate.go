package coursesdk

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across payload checks; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a payload rejected client-side before any request
// was sent, so admin forms fail fast with field-level messages instead of a
// server round trip.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

// validatePayload runs struct-tag validation on an outgoing payload.
func validatePayload(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return &ValidationError{Fields: fields}
}
