package handlers

import (
	"log/slog"
	"net/http"

	"txn-query/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through two helpers:
//
// 1. SendError for client and query errors (4xx responses), e.g.
//    SendError(c, errors.ValidationInvalidDate, errors.WithDetails("start_date: ..."))
//    SendError(c, errors.TransactionNotFound)
//
// 2. SendSystemError for repository and other internal failures (500 responses).
//    The internal error is logged with the trace ID and never sent to the client.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendValidationError sends field-level validator failures as VALIDATION_001
func SendValidationError(c echo.Context, fieldErrors map[string]string) error {
	errorResponse := errors.NewValidationError(fieldErrors, getTraceID(c))
	return c.JSON(http.StatusBadRequest, errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)
	slog.Error("Request failed",
		"trace_id", traceID,
		"method", c.Request().Method,
		"path", c.Path(),
		"error", internalErr)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
