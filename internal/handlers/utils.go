package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"txn-query/internal/errors"
	"txn-query/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// paramError describes a malformed query parameter and the code it maps to
type paramError struct {
	code   errors.ErrorCode
	detail string
}

func (e *paramError) send(c echo.Context) error {
	return SendError(c, e.code, errors.WithDetails(e.detail))
}

// getOptionalIntParam parses an integer query parameter, returning nil when absent
func getOptionalIntParam(c echo.Context, name string, min, max int) (*int, *paramError) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return nil, &paramError{errors.ValidationInvalidFormat, fmt.Sprintf("%s: must be an integer", name)}
	}

	if value < min || value > max {
		return nil, &paramError{errors.ValidationOutOfRange, fmt.Sprintf("%s: must be between %d and %d", name, min, max)}
	}

	return &value, nil
}

// getDecimalParam parses a decimal query parameter, returning nil when absent
func getDecimalParam(c echo.Context, name string) (*decimal.Decimal, *paramError) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return nil, nil
	}

	value, err := decimal.NewFromString(param)
	if err != nil {
		return nil, &paramError{errors.ValidationInvalidFormat, fmt.Sprintf("%s: must be a decimal number", name)}
	}

	return &value, nil
}

// getDateParam returns a trimmed date query parameter after checking that it parses
func getDateParam(c echo.Context, name string) (string, *paramError) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return "", nil
	}

	if _, err := models.ParseCalendarDate(param); err != nil {
		return "", &paramError{errors.ValidationInvalidDate, fmt.Sprintf("%s: %q is not a valid date", name, param)}
	}

	return param, nil
}

// getTypeParam parses an optional transaction type query parameter
func getTypeParam(c echo.Context, name string) (models.TransactionType, *paramError) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return "", nil
	}

	txnType, err := models.ParseTransactionType(param)
	if err != nil {
		return "", &paramError{errors.ValidationInvalidType, fmt.Sprintf("%s: %q is not debit or credit", name, param)}
	}

	return txnType, nil
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}
