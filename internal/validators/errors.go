package validators

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedType  = errors.New("unsupported type for validation")
	ErrUnknownField     = errors.New("unknown field for validation")
	ErrValidationFailed = errors.New("validation failed")
)

// FieldError describes one rule a field broke.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ValidationError lists every broken rule of a value. It matches
// [ErrValidationFailed] with errors.Is.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s", ve.Errors[0].Message)
	}

	msgs := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		msgs = append(msgs, fe.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

func (ve *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
