package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"laundrybill/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidPhone reports whether phone is exactly ten digits.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// validateStruct runs the `validate` tags and converts failures into a ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewValidationError(err.Error())
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return apperror.NewValidationError(fields[0].Message, fields...)
}

// fieldPath drops the struct name from the namespace: "items[0].qty".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "phone10":
		return field + " must be exactly 10 digits"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s entry", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func fieldError(field, message string) error {
	return apperror.NewValidationError(message, apperror.FieldError{Field: field, Message: message})
}
