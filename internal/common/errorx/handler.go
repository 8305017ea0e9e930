package errorx

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler provides unified error handling for HTTP handlers
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// HandleError converts any error to an APIError and writes the HTTP response
func (h *ErrorHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := ConvertToAPIError(err)

	switch apiErr.Severity {
	case SeverityWarning:
		h.logger.Warn("request failed",
			zap.String("code", apiErr.Code),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	default:
		h.logger.Error("request failed",
			zap.String("code", apiErr.Code),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}

	c.JSON(apiErr.HTTPStatus, gin.H{"error": apiErr})
}

// ConvertToAPIError converts any error to an APIError
func ConvertToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternal.WithMessage("%s", err.Error())
}
