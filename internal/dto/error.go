package dto

import "github.com/SscSPs/money_tracker/internal/apperrors"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    apperrors.ErrorCode    `json:"code"`
	Message string                 `json:"message"`
	Fields  []apperrors.FieldError `json:"fields,omitempty"`
}
