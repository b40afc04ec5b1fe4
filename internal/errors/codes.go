package errors

import "net/http"

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_007"
	ValidationInvalidType   ErrorCode = "VALIDATION_008"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound         ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount    ErrorCode = "TRANSACTION_002"
	TransactionValidationFailed ErrorCode = "TRANSACTION_005"
	TransactionInvalidType      ErrorCode = "TRANSACTION_006"
)

// Query error codes (QUERY_*)
const (
	QueryEmptyInput          ErrorCode = "QUERY_001"
	QueryUnsupportedOperator ErrorCode = "QUERY_002"
)

// Calculator error codes (CALC_*)
const (
	CalcInvalidExpression ErrorCode = "CALC_001"
	CalcDivisionByZero    ErrorCode = "CALC_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

type codeInfo struct {
	message string
	status  int
}

// registry holds the default message and HTTP status of every code
var registry = map[ErrorCode]codeInfo{
	ValidationGeneral:       {"Validation failed", http.StatusBadRequest},
	ValidationRequiredField: {"Required field is missing", http.StatusBadRequest},
	ValidationInvalidFormat: {"Invalid field format", http.StatusBadRequest},
	ValidationOutOfRange:    {"Field value is out of allowed range", http.StatusBadRequest},
	ValidationInvalidDate:   {"Invalid date, use YYYY-MM-DD", http.StatusBadRequest},
	ValidationInvalidType:   {"Invalid transaction type, must be 'debit' or 'credit'", http.StatusBadRequest},

	TransactionNotFound:         {"Transaction not found", http.StatusNotFound},
	TransactionInvalidAmount:    {"Invalid transaction amount", http.StatusBadRequest},
	TransactionValidationFailed: {"Transaction validation failed", http.StatusUnprocessableEntity},
	TransactionInvalidType:      {"Invalid transaction type", http.StatusBadRequest},

	QueryEmptyInput:          {"No transactions to aggregate", http.StatusUnprocessableEntity},
	QueryUnsupportedOperator: {"Unsupported query operation", http.StatusBadRequest},

	CalcInvalidExpression: {"Invalid arithmetic expression", http.StatusUnprocessableEntity},
	CalcDivisionByZero:    {"Division by zero", http.StatusUnprocessableEntity},

	SystemInternalError:      {"An unexpected error occurred. Please contact support with trace ID", http.StatusInternalServerError},
	SystemDatabaseError:      {"Database connection error", http.StatusInternalServerError},
	SystemServiceUnavailable: {"Service temporarily unavailable", http.StatusServiceUnavailable},
	SystemConfigurationError: {"System configuration error", http.StatusInternalServerError},
	SystemUnexpectedError:    {"An unexpected error occurred", http.StatusInternalServerError},
	SystemRateLimitExceeded:  {"Rate limit exceeded. Please try again later", http.StatusTooManyRequests},
	SystemRouteNotFound:      {"Route not found", http.StatusNotFound},
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if info, ok := registry[code]; ok {
		return info.message
	}
	return "An error occurred"
}

// GetHTTPStatus returns the HTTP status for a code. Unknown codes are 500.
func GetHTTPStatus(code ErrorCode) int {
	if info, ok := registry[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := registry[code]
	return ok
}
