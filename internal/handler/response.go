package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logbookocr/internal/domain"
	"logbookocr/internal/llm"
	"logbookocr/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rateErr *llm.RateLimitError
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: png, jpg"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", "model provider is rate limited; retry later"
	case errors.Is(err, domain.ErrUnknownProvider):
		return http.StatusInternalServerError, "UNKNOWN_PROVIDER", "extraction provider is not configured correctly"
	case errors.Is(err, domain.ErrModelNotConfigured):
		return http.StatusInternalServerError, "MODEL_NOT_CONFIGURED", "generative model is not configured"
	default:
		return http.StatusInternalServerError, "OCR_FAILED", fmt.Sprintf("OCR processing failed: %v", err)
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, logger *zap.Logger, err error) {
	status, code, msg := MapDomainError(err)

	var rateErr *llm.RateLimitError
	if errors.As(err, &rateErr) {
		c.Header("Retry-After", strconv.Itoa(int(rateErr.RetryAfter.Seconds())))
	}

	if status >= 500 && logger != nil {
		logger.Error("handler.HandleError: internal error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}
