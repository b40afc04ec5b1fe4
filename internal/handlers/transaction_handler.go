package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"txn-query/internal/dto"
	"txn-query/internal/errors"
	"txn-query/internal/models"
	"txn-query/internal/query"
	"txn-query/internal/services"
	"txn-query/internal/validation"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction query HTTP requests
type TransactionHandler struct {
	service services.TransactionQueryServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service services.TransactionQueryServiceInterface) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// RegisterRoutes mounts the transaction endpoints on g
func (h *TransactionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/transactions", h.ImportTransactions)
	g.GET("/transactions", h.ListTransactions)
	g.GET("/transactions/descriptions", h.GetDescriptions)
	g.GET("/transactions/types", h.GetUniqueTypes)
	g.GET("/transactions/totals", h.GetTotals)
	g.GET("/transactions/average", h.GetAverage)
	g.GET("/transactions/dominant-type", h.GetDominantType)
	g.GET("/transactions/busiest-month", h.GetBusiestMonth)
	g.GET("/transactions/summary", h.GetSummary)
	// find-by-id sits under by-id so ids like "summary" stay reachable
	g.GET("/transactions/by-id/:id", h.GetTransaction)
}

// ImportTransactions stores a batch of transactions
// @Summary Import transactions
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.ImportTransactionsRequest true "Transactions to store"
// @Success 201 {object} SuccessResponse{data=dto.ImportTransactionsResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 422 {object} errors.ErrorResponse "TRANSACTION_005 - Transaction validation failed"
// @Router /transactions [post]
func (h *TransactionHandler) ImportTransactions(c echo.Context) error {
	var req dto.ImportTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		if fieldErrors := validation.FieldErrors(err); fieldErrors != nil {
			return SendValidationError(c, fieldErrors)
		}
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	imported, err := h.service.Import(c.Request().Context(), req.ToModels())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	slog.Info("Transactions imported",
		"trace_id", getTraceID(c),
		"client_ip", getClientIP(c),
		"count", imported)

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.ImportTransactionsResponse{Imported: imported},
		Message: "Transactions imported successfully",
	})
}

// ListTransactions returns transactions matching the optional filters
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Param type query string false "Transaction type" Enums(debit, credit)
// @Param merchant query string false "Exact merchant name"
// @Param min_amount query string false "Inclusive lower amount bound"
// @Param max_amount query string false "Inclusive upper amount bound"
// @Param start_date query string false "Inclusive range start (YYYY-MM-DD), requires end_date"
// @Param end_date query string false "Inclusive range end (YYYY-MM-DD), requires start_date"
// @Param before query string false "Strictly earlier than (YYYY-MM-DD)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_007 - Invalid date or VALIDATION_008 - Invalid type"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	filters, perr := parseTransactionFilters(c)
	if perr != nil {
		return perr.send(c)
	}

	ctx := c.Request().Context()
	transactions, err := h.service.List(ctx, filters)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	response := dto.ListTransactionsResponse{
		Transactions: transactions,
		Count:        len(transactions),
	}

	if len(transactions) == 0 && filters.MerchantName != "" {
		suggestions, err := h.service.SuggestMerchants(ctx, filters.MerchantName)
		if err != nil {
			return h.handleServiceError(c, err)
		}
		response.Suggestions = suggestions
	}

	return c.JSON(http.StatusOK, response)
}

// parseTransactionFilters reads the list filters from the query string
func parseTransactionFilters(c echo.Context) (models.TransactionFilters, *paramError) {
	var (
		filters models.TransactionFilters
		perr    *paramError
	)

	if filters.Type, perr = getTypeParam(c, "type"); perr != nil {
		return filters, perr
	}

	filters.MerchantName = c.QueryParam("merchant")

	if filters.MinAmount, perr = getDecimalParam(c, "min_amount"); perr != nil {
		return filters, perr
	}
	if filters.MaxAmount, perr = getDecimalParam(c, "max_amount"); perr != nil {
		return filters, perr
	}

	if filters.StartDate, perr = getDateParam(c, "start_date"); perr != nil {
		return filters, perr
	}
	if filters.EndDate, perr = getDateParam(c, "end_date"); perr != nil {
		return filters, perr
	}
	if filters.BeforeDate, perr = getDateParam(c, "before"); perr != nil {
		return filters, perr
	}

	return filters, nil
}

// GetTransaction returns the first transaction with the given id
// @Summary Find transaction by id
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /transactions/by-id/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	transaction, err := h.service.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transaction)
}

// GetDescriptions returns every description in storage order
// @Summary List descriptions
// @Tags Transactions
// @Produce json
// @Success 200 {object} dto.DescriptionsResponse
// @Router /transactions/descriptions [get]
func (h *TransactionHandler) GetDescriptions(c echo.Context) error {
	descriptions, err := h.service.Descriptions(c.Request().Context())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DescriptionsResponse{Descriptions: descriptions})
}

// GetUniqueTypes returns the distinct transaction types in first-seen order
// @Summary List transaction types
// @Tags Transactions
// @Produce json
// @Success 200 {object} dto.TypesResponse
// @Router /transactions/types [get]
func (h *TransactionHandler) GetUniqueTypes(c echo.Context) error {
	types, err := h.service.UniqueTypes(c.Request().Context())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TypesResponse{Types: types})
}

// GetTotals returns the total amount for the date components given, plus the debit total
// @Summary Totals by date
// @Tags Transactions
// @Produce json
// @Param year query int false "Calendar year"
// @Param month query int false "Month, 1-12"
// @Param day query int false "Day of month, 1-31"
// @Success 200 {object} services.Totals
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Not an integer or VALIDATION_004 - Out of range"
// @Router /transactions/totals [get]
func (h *TransactionHandler) GetTotals(c echo.Context) error {
	var (
		filter models.DateFilter
		perr   *paramError
	)

	if filter.Year, perr = getOptionalIntParam(c, "year", 1, 9999); perr != nil {
		return perr.send(c)
	}
	if filter.Month, perr = getOptionalIntParam(c, "month", 1, 12); perr != nil {
		return perr.send(c)
	}
	if filter.Day, perr = getOptionalIntParam(c, "day", 1, 31); perr != nil {
		return perr.send(c)
	}

	totals, err := h.service.Totals(c.Request().Context(), filter)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, totals)
}

// GetAverage returns the mean amount, or 0 when there are no transactions
// @Summary Average amount
// @Tags Transactions
// @Produce json
// @Success 200 {object} dto.AverageResponse
// @Router /transactions/average [get]
func (h *TransactionHandler) GetAverage(c echo.Context) error {
	average, err := h.service.Average(c.Request().Context())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AverageResponse{AverageAmount: average})
}

// GetDominantType reports whether debits or credits are more numerous
// @Summary Dominant type
// @Tags Transactions
// @Produce json
// @Success 200 {object} dto.DominantTypeResponse
// @Router /transactions/dominant-type [get]
func (h *TransactionHandler) GetDominantType(c echo.Context) error {
	dominance, err := h.service.DominantType(c.Request().Context())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DominantTypeResponse{DominantType: string(dominance)})
}

// GetBusiestMonth returns the month with the most transactions
// @Summary Busiest month
// @Tags Transactions
// @Produce json
// @Param type query string false "Restrict to debit transactions" Enums(debit)
// @Success 200 {object} dto.BusiestMonthResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_008 - Invalid type or QUERY_002 - Unsupported type"
// @Failure 422 {object} errors.ErrorResponse "QUERY_001 - No transactions to aggregate"
// @Router /transactions/busiest-month [get]
func (h *TransactionHandler) GetBusiestMonth(c echo.Context) error {
	txnType, perr := getTypeParam(c, "type")
	if perr != nil {
		return perr.send(c)
	}

	month, err := h.service.BusiestMonth(c.Request().Context(), txnType)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BusiestMonthResponse{Month: month, Type: string(txnType)})
}

// GetSummary returns every aggregate at once
// @Summary Transaction summary
// @Tags Transactions
// @Produce json
// @Success 200 {object} query.Summary
// @Router /transactions/summary [get]
func (h *TransactionHandler) GetSummary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// handleServiceError maps service and query sentinels to API error codes
func (h *TransactionHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrTransactionNotFound):
		return SendError(c, errors.TransactionNotFound)
	case stderrors.Is(err, query.ErrEmptyInput):
		return SendError(c, errors.QueryEmptyInput)
	case stderrors.Is(err, services.ErrStoreUnavailable):
		return SendError(c, errors.SystemServiceUnavailable)
	case stderrors.Is(err, services.ErrUnsupportedType):
		return SendError(c, errors.QueryUnsupportedOperator, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrIncompleteDateRange):
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidAmountRange):
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	case stderrors.Is(err, query.ErrInvalidDate):
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrInvalidTransactionType):
		return SendError(c, errors.ValidationInvalidType)
	case stderrors.Is(err, models.ErrInvalidAmount):
		return SendError(c, errors.TransactionInvalidAmount, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrMissingTransactionID),
		stderrors.Is(err, models.ErrMissingTransactionDate):
		return SendError(c, errors.TransactionValidationFailed, errors.WithDetails(err.Error()))
	default:
		return SendSystemError(c, err)
	}
}
