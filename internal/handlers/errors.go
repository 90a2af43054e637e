package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/SscSPs/money_tracker/internal/dto"
	"github.com/SscSPs/money_tracker/internal/middleware"
	"github.com/SscSPs/money_tracker/internal/utils/validation"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error code onto its HTTP status.
func statusFor(code apperrors.ErrorCode) int {
	switch {
	case code == apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.IsNotFoundCode(code):
		return http.StatusNotFound
	case code == apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case code == apperrors.CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes err as a dto.ErrorResponse. Internal errors never
// leak their cause to the client.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := apperrors.CodeOf(err)
	status := statusFor(code)

	body := dto.ErrorResponse{Code: code, Message: "internal server error"}
	if appErr := validation.ToAppError(err); status != http.StatusInternalServerError {
		body.Message = appErr.Message
		body.Fields = appErr.Fields
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("code", string(code)), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("code", string(code)), slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, body)
}

// bindingError reports a failed ShouldBind* call.
func bindingError(c *gin.Context, err error) {
	respondWithError(c, validation.ToAppError(err))
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(c, apperrors.NewValidationError("invalid path parameter",
			validation.NewFieldError(name, "gt", "0")))
		return 0, false
	}
	return id, true
}

// requireUser returns the authenticated user id set by AuthMiddleware.
func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: apperrors.CodeUnauthorized, Message: "Unauthorized"})
		return 0, false
	}
	return userID, true
}
