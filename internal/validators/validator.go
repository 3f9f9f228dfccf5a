package validators

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-repo-pulse/models"
)

// Field names accepted by Validate to scope the check.
const (
	FieldOwner          = "Owner"
	FieldName           = "Name"
	FieldLimit          = "Limit"
	FieldEncryptedValue = "EncryptedValue"
	FieldKeyID          = "KeyID"
)

var (
	targetFields = []string{FieldOwner, FieldName}
	filterFields = []string{FieldOwner, FieldName, FieldLimit}
	secretFields = []string{FieldName, FieldEncryptedValue, FieldKeyID}
)

type structValidator struct {
	validate *validator.Validate
}

// NewValidator returns the [Validator] of targets, run filters, trigger
// requests and encrypted secrets.
func NewValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// registration only fails for empty tags or nil functions
	_ = v.RegisterValidation(TagOwner, validateOwner)
	_ = v.RegisterValidation(TagRepo, validateRepo)
	_ = v.RegisterValidation(TagSecretName, validateSecretName)

	return &structValidator{validate: v}
}

func (v *structValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Target:
		return v.check(ctx, &value, targetFields, fields)
	case *models.Target:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.check(ctx, value, targetFields, fields)

	case models.TriggerRunRequest:
		return v.check(ctx, &value, targetFields, fields)
	case *models.TriggerRunRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.check(ctx, value, targetFields, fields)

	case models.RunFilter:
		return v.check(ctx, &value, filterFields, fields)
	case *models.RunFilter:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.check(ctx, value, filterFields, fields)

	case models.EncryptedSecret:
		return v.check(ctx, &value, secretFields, fields)
	case *models.EncryptedSecret:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.check(ctx, value, secretFields, fields)

	default:
		return ErrUnsupportedType
	}
}

func (v *structValidator) check(ctx context.Context, obj any, known, fields []string) error {
	for _, f := range fields {
		if !slices.Contains(known, f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, obj)
	} else {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}
	return out
}
