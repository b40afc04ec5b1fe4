package middleware

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"txn-query/internal/errors"
	"txn-query/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrorHandler formats errors that reach Echo as standardized error responses,
// logs them and counts them by code, endpoint and status
type ErrorHandler struct {
	apiErrorsTotal *prometheus.CounterVec
}

// NewErrorHandler registers the api_errors_total counter on reg
func NewErrorHandler(reg prometheus.Registerer) *ErrorHandler {
	return &ErrorHandler{
		apiErrorsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total number of API errors by code, endpoint, and status",
			},
			[]string{"code", "endpoint", "status"},
		),
	}
}

// Handle implements echo.HTTPErrorHandler
func (h *ErrorHandler) Handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	errorResponse, httpStatus := render(err, traceID)

	logLevel := slog.LevelWarn
	if httpStatus >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", errorResponse.Error.Code,
		"status", httpStatus,
		"route", c.Path(),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	h.apiErrorsTotal.WithLabelValues(
		errorResponse.Error.Code,
		c.Path(),
		strconv.Itoa(httpStatus),
	).Inc()

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpStatus)
	} else {
		err = c.JSON(httpStatus, errorResponse)
	}
	if err != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", err.Error(),
		)
	}
}

// render picks the response for err: echo HTTP errors keep their status,
// validator failures become VALIDATION_001, anything else is a hidden SYSTEM_001
func render(err error, traceID string) (*errors.ErrorResponse, int) {
	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		response := errors.NewErrorResponse(
			statusCode(echoErr.Code),
			traceID,
			errors.WithMessage(fmt.Sprintf("%v", echoErr.Message)),
		)
		return response, echoErr.Code
	}

	if fieldErrors := validation.FieldErrors(err); fieldErrors != nil {
		return errors.NewValidationError(fieldErrors, traceID), http.StatusBadRequest
	}

	response, _ := errors.WrapSystemError(err, traceID)
	return response, response.GetHTTPStatus()
}

// statusCodes maps statuses raised by echo itself (routing, binding, body limits) onto error codes
var statusCodes = map[int]errors.ErrorCode{
	http.StatusBadRequest:            errors.ValidationGeneral,
	http.StatusNotFound:              errors.SystemRouteNotFound,
	http.StatusMethodNotAllowed:      errors.ValidationGeneral,
	http.StatusRequestEntityTooLarge: errors.ValidationOutOfRange,
	http.StatusUnsupportedMediaType:  errors.ValidationInvalidFormat,
	http.StatusUnprocessableEntity:   errors.ValidationGeneral,
	http.StatusTooManyRequests:       errors.SystemRateLimitExceeded,
	http.StatusInternalServerError:   errors.SystemInternalError,
	http.StatusServiceUnavailable:    errors.SystemServiceUnavailable,
}

func statusCode(status int) errors.ErrorCode {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return errors.SystemUnexpectedError
}
