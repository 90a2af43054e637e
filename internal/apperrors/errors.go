package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure that must not leak details to the caller.
var ErrInternal = errors.New("internal server error")

// ErrBalanceInvariant indicates a delta was about to be applied to a holder
// reference that is missing or no longer resolves to a row.
var ErrBalanceInvariant = errors.New("balance invariant violation")

// ErrRepositoryInvariant indicates a write succeeded but the row could not be read back.
var ErrRepositoryInvariant = errors.New("repository invariant violation")

// ErrorCode is the stable, caller-visible identifier of a failure.
type ErrorCode string

const (
	CodeValidation          ErrorCode = "VALIDATION_ERROR"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeAccountNotFound     ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeCreditCardNotFound  ErrorCode = "CREDIT_CARD_NOT_FOUND"
	CodeCategoryNotFound    ErrorCode = "CATEGORY_NOT_FOUND"
	CodeSubcategoryNotFound ErrorCode = "SUBCATEGORY_NOT_FOUND"
	CodeTagNotFound         ErrorCode = "TAG_NOT_FOUND"
	CodeInternal            ErrorCode = "INTERNAL_SERVER_ERROR"

	// Transport level codes, never produced by services.
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
)

// FieldError describes a single offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// AppError is the typed failure returned across the service boundary.
type AppError struct {
	Code    ErrorCode
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(names, ", "))
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a VALIDATION_ERROR carrying the offending fields.
func NewValidationError(message string, fields ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Fields:  fields,
		Err:     ErrValidation,
	}
}

// NewNotFoundError builds a not-found error with a resource specific code.
func NewNotFoundError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     ErrNotFound,
	}
}

// NewInternalError hides cause behind a generic message. The cause stays
// reachable through errors.Is / errors.As for logging and tests.
func NewInternalError(cause error) *AppError {
	err := ErrInternal
	if cause != nil {
		err = errors.Join(ErrInternal, cause)
	}
	return &AppError{
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf resolves the stable error code for any error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// IsNotFoundCode reports whether code is one of the not-found family.
func IsNotFoundCode(code ErrorCode) bool {
	switch code {
	case CodeNotFound, CodeAccountNotFound, CodeCreditCardNotFound,
		CodeCategoryNotFound, CodeSubcategoryNotFound, CodeTagNotFound:
		return true
	}
	return false
}
