// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error codes carried in the response envelope.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeInvalidAnalysis = "INVALID_ANALYSIS"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeHTTP            = "HTTP_ERROR"
	CodeUnknown         = "UNKNOWN_ERROR"
)

// MessageFileTooLarge is returned for request bodies over the upload limit.
const MessageFileTooLarge = "File too large"

// APIError represents a structured API error. Cause is only logged.
type APIError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

// errorResponse is the envelope every failure is rendered as.
type errorResponse struct {
	Success bool   `json:"success" msgpack:"success"`
	Error   string `json:"error" msgpack:"error"`
	Code    string `json:"code" msgpack:"code"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a 400 error for an analysis that failed validation
func NewValidationError(cause error) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidAnalysis,
		Message: fmt.Sprintf("Invalid analysis: %v", cause),
		Cause:   cause,
	}
}

// NewPayloadTooLargeError creates a 413 error
func NewPayloadTooLargeError(cause error) *APIError {
	return &APIError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    CodePayloadTooLarge,
		Message: MessageFileTooLarge,
		Cause:   cause,
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: message,
		Cause:   cause,
	}
}

// NewUpstreamError creates a 500 error for a failed completion call.
// The message is fixed per endpoint; the provider error never reaches the client.
func NewUpstreamError(message string, cause error) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    CodeUpstream,
		Message: message,
		Cause:   cause,
	}
}

// NewErrorHandler returns an echo.HTTPErrorHandler rendering the error envelope.
// Usage: e.HTTPErrorHandler = api.NewErrorHandler(logger)
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		apiErr := toAPIError(err)

		attrs := []any{
			"status", apiErr.Status,
			"code", apiErr.Code,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		}
		if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
			attrs = append(attrs, "request_id", id)
		}
		if apiErr.Cause != nil {
			attrs = append(attrs, "error", apiErr.Cause)
		}
		if apiErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Debug("request rejected", attrs...)
		}

		body := errorResponse{Success: false, Error: apiErr.Message, Code: apiErr.Code}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(apiErr.Status)
		} else {
			err = respond(c, apiErr.Status, body)
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}

func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == http.StatusRequestEntityTooLarge {
			return NewPayloadTooLargeError(err)
		}
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok && s != "" {
			msg = s
		}
		return &APIError{Status: httpErr.Code, Code: CodeHTTP, Message: msg, Cause: httpErr.Internal}
	}

	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    CodeUnknown,
		Message: "An unexpected error occurred",
		Cause:   err,
	}
}
