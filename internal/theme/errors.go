package theme

import (
	"errors"
	"fmt"
)

// ErrEmptyRequest is returned when neither a prompt nor an attachment is given.
var ErrEmptyRequest = errors.New("a prompt or an attachment is required")

// StructuralValidationError reports a model response that does not match the
// required shape. No part of such a response is ever used.
type StructuralValidationError struct {
	Reason string
	Err    error
}

func (e *StructuralValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid design response: %s: %v", e.Reason, e.Err)
	}
	return "invalid design response: " + e.Reason
}

func (e *StructuralValidationError) Unwrap() error { return e.Err }

// IsStructural reports whether err is a StructuralValidationError.
func IsStructural(err error) bool {
	var sv *StructuralValidationError
	return errors.As(err, &sv)
}
