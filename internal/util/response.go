package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/metrics"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes one error
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// RespondWithError renders any error. Untyped errors become BACKEND_FAILURE.
func RespondWithError(c *gin.Context, err error) {
	RespondWithAPIError(c, apperrors.From(err))
}

// RespondWithAPIError sends a structured API error response and aborts the chain
func RespondWithAPIError(c *gin.Context, apiErr *apperrors.APIError) {
	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	metrics.RecordError(string(apiErr.Code), path)

	if apiErr.Status >= http.StatusInternalServerError {
		logger.Log.Error("API error",
			zap.String("code", string(apiErr.Code)),
			zap.String("message", apiErr.Message),
			zap.String("path", path),
			zap.Error(apiErr.Unwrap()),
		)
	}

	c.AbortWithStatusJSON(apiErr.Status, ErrorResponse{Error: ErrorBody{
		Code:    string(apiErr.Code),
		Message: apiErr.Message,
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}})
}

// RespondBindError renders a request body that failed to bind
func RespondBindError(c *gin.Context, err error) {
	RespondWithAPIError(c, apperrors.InvalidInput("body", "invalid request body").WithDetails(err.Error()))
}

// RespondUnauthorized sends a 401 Unauthorized response
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "user not authenticated"
	}
	RespondWithAPIError(c, apperrors.Unauthorized(message))
}
