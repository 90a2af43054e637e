package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// New returns a validator reading the same `binding` tags gin uses and
// reporting fields by their JSON names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(JSONFieldName)
	return v
}

// JSONFieldName names a struct field the way clients see it.
func JSONFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ToAppError converts validator and binding failures into a VALIDATION_ERROR.
func ToAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid request: " + err.Error())
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, NewFieldError(fe.Field(), fe.Tag(), fe.Param()))
	}
	return apperrors.NewValidationError("request validation failed", fields...)
}

// NewFieldError builds a FieldError for checks made outside the validator.
func NewFieldError(field, tag, param string) apperrors.FieldError {
	return apperrors.FieldError{Field: field, Tag: tag, Message: Message(tag, param)}
}

// Message renders a human readable description of a failed rule.
func Message(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must be at most %s", param)
	case "range":
		return fmt.Sprintf("must be between %s", strings.Replace(param, "-", " and ", 1))
	case "required_for_source":
		return fmt.Sprintf("is required when transactionSource is %s", param)
	case "excluded_for_source":
		return fmt.Sprintf("must be empty when transactionSource is %s", param)
	case "required_without":
		return fmt.Sprintf("is required when %s is absent", param)
	case "date":
		return "must be an RFC3339 timestamp or a YYYY-MM-DD date"
	default:
		return fmt.Sprintf("failed on the '%s' rule", tag)
	}
}
