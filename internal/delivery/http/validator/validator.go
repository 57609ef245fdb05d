// Package validator adapts go-playground/validator to Echo's Validator
// interface and maps failures onto the application error taxonomy.
package validator

import (
	"reflect"
	"strconv"
	"strings"

	domainerrors "spendtrack/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the request validator. Field names in error output follow
// the json tag, matching what the client actually sent.
func New() *echoValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &echoValidator{validate: validate}
}

// Validate implements echo.Validator. Rule violations come back as a
// FieldValidationError so the error handler renders them per field.
func (v *echoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid input structure")
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldErr.Field()] = messageForTag(fieldErr)
	}

	return domainerrors.NewFieldValidationError(fields)
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "The " + fieldErr.Field() + " field is required"
	case "email":
		return "The " + fieldErr.Field() + " must be a valid email address"
	case "min":
		return "The " + fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters"
	case "max":
		if _, err := strconv.Atoi(fieldErr.Param()); err == nil {
			return "The " + fieldErr.Field() + " may not be greater than " + fieldErr.Param() + " characters"
		}

		return "The " + fieldErr.Field() + " is too long"
	default:
		return "The " + fieldErr.Field() + " is invalid"
	}
}
