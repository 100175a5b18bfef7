package handler

import (
	"errors"
	"fmt"

	"catalog-service/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into Echo's Validator hook.
// Failed checks come back as a typed validation error carrying per-field
// details, so they render in the standard envelope like every other failure.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal(err)
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field:         fe.Field(),
			Message:       messageForTag(fe),
			RejectedValue: fe.Value(),
		})
	}
	return apperr.Validation("request validation failed", fields)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
