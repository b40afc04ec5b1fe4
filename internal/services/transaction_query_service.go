package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"txn-query/internal/models"
	"txn-query/internal/query"
	"txn-query/internal/repositories"

	"github.com/shopspring/decimal"
)

// DefaultSuggestionDistance is the Levenshtein radius used for merchant suggestions
const DefaultSuggestionDistance = 3

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrIncompleteDateRange = errors.New("start_date and end_date must be provided together")
	ErrInvalidAmountRange  = errors.New("min_amount must not exceed max_amount")
	ErrUnsupportedType     = errors.New("busiest month is only available for all or debit transactions")
)

type transactionQueryService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
	breaker         *CircuitBreaker
}

// QueryServiceOption customizes a query service
type QueryServiceOption func(*transactionQueryService)

// WithCircuitBreaker guards every store call with cb
func WithCircuitBreaker(cb *CircuitBreaker) QueryServiceOption {
	return func(s *transactionQueryService) {
		s.breaker = cb
	}
}

func NewTransactionQueryService(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	opts ...QueryServiceOption,
) TransactionQueryServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	s := &transactionQueryService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// observe records the outcome and latency of one operation
func (s *transactionQueryService) observe(operation string, start time.Time, err error) {
	tags := map[string]string{"operation": operation}
	if err != nil {
		tags["reason"] = failureReason(err)
		s.metrics.IncrementCounter(MetricQueryFailed, tags)
	} else {
		s.metrics.IncrementCounter(MetricQuerySuccess, tags)
	}
	s.metrics.RecordProcessingTime(operation, time.Since(start))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, query.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, query.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrTransactionNotFound):
		return "not_found"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	case errors.Is(err, ErrIncompleteDateRange), errors.Is(err, ErrInvalidAmountRange),
		errors.Is(err, ErrUnsupportedType), errors.Is(err, models.ErrInvalidTransactionType),
		errors.Is(err, models.ErrMissingTransactionID), errors.Is(err, models.ErrMissingTransactionDate),
		errors.Is(err, models.ErrInvalidAmount):
		return "invalid_input"
	default:
		return "error"
	}
}

// isStoreFailure reports whether err came from the store rather than from the input
func isStoreFailure(err error) bool {
	return failureReason(err) == "error"
}

func (s *transactionQueryService) load(ctx context.Context, operation string) ([]models.Transaction, error) {
	if !s.breaker.Allow() {
		return nil, ErrStoreUnavailable
	}

	transactions, err := s.transactionRepo.List(ctx)
	if err != nil {
		s.breaker.RecordFailure()
		s.logger.Error("failed to load transactions",
			"operation", operation,
			"error", err)
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	s.breaker.RecordSuccess()
	s.metrics.RecordGauge(MetricStoredTransactions, float64(len(transactions)), nil)
	return transactions, nil
}

func (s *transactionQueryService) Import(ctx context.Context, transactions []models.Transaction) (count int, err error) {
	defer func(start time.Time) { s.observe("import", start, err) }(time.Now())

	if !s.breaker.Allow() {
		return 0, ErrStoreUnavailable
	}

	if err := s.transactionRepo.CreateBatch(transactions); err != nil {
		if isStoreFailure(err) {
			s.breaker.RecordFailure()
		}
		s.logger.Warn("transaction import rejected",
			"batch_size", len(transactions),
			"error", err)
		return 0, err
	}
	s.breaker.RecordSuccess()

	s.metrics.RecordGauge(MetricTransactionsImported, float64(len(transactions)), nil)
	s.logger.Info("transactions imported", "count", len(transactions))
	return len(transactions), nil
}

// List applies each filter that is set, in a fixed order: type, merchant, amount range, date range, before date.
func (s *transactionQueryService) List(ctx context.Context, filters models.TransactionFilters) (result []models.Transaction, err error) {
	defer func(start time.Time) { s.observe("list", start, err) }(time.Now())

	if (filters.StartDate == "") != (filters.EndDate == "") {
		return nil, ErrIncompleteDateRange
	}
	if filters.MinAmount != nil && filters.MaxAmount != nil && filters.MinAmount.GreaterThan(*filters.MaxAmount) {
		return nil, ErrInvalidAmountRange
	}

	result, err = s.load(ctx, "list")
	if err != nil {
		return nil, err
	}

	if filters.Type != "" {
		result = query.ByType(result, filters.Type)
	}
	if filters.MerchantName != "" {
		result = query.ByMerchant(result, filters.MerchantName)
	}
	if filters.MinAmount != nil || filters.MaxAmount != nil {
		minAmount, maxAmount := amountBounds(result, filters.MinAmount, filters.MaxAmount)
		result = query.ByAmountRange(result, minAmount, maxAmount)
	}
	if filters.StartDate != "" {
		if result, err = query.InDateRange(result, filters.StartDate, filters.EndDate); err != nil {
			return nil, err
		}
	}
	if filters.BeforeDate != "" {
		if result, err = query.BeforeDate(result, filters.BeforeDate); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// amountBounds fills a missing bound with the extreme amount present in transactions
func amountBounds(transactions []models.Transaction, minAmount, maxAmount *decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	var lo, hi decimal.Decimal
	if len(transactions) > 0 {
		lo, hi = transactions[0].Amount, transactions[0].Amount
		for _, t := range transactions[1:] {
			lo = decimal.Min(lo, t.Amount)
			hi = decimal.Max(hi, t.Amount)
		}
	}
	if minAmount != nil {
		lo = *minAmount
	}
	if maxAmount != nil {
		hi = *maxAmount
	}
	return lo, hi
}

func (s *transactionQueryService) FindByID(ctx context.Context, transactionID string) (found *models.Transaction, err error) {
	defer func(start time.Time) { s.observe("find_by_id", start, err) }(time.Now())

	transactions, err := s.load(ctx, "find_by_id")
	if err != nil {
		return nil, err
	}

	txn, ok := query.FindByID(transactions, transactionID)
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return &txn, nil
}

func (s *transactionQueryService) Descriptions(ctx context.Context) (descriptions []string, err error) {
	defer func(start time.Time) { s.observe("map_descriptions", start, err) }(time.Now())

	transactions, err := s.load(ctx, "map_descriptions")
	if err != nil {
		return nil, err
	}
	return query.MapDescriptions(transactions), nil
}

func (s *transactionQueryService) UniqueTypes(ctx context.Context) (types []models.TransactionType, err error) {
	defer func(start time.Time) { s.observe("unique_types", start, err) }(time.Now())

	transactions, err := s.load(ctx, "unique_types")
	if err != nil {
		return nil, err
	}
	return query.UniqueTypes(transactions), nil
}

func (s *transactionQueryService) Totals(ctx context.Context, filter models.DateFilter) (totals *Totals, err error) {
	defer func(start time.Time) { s.observe("total_amount", start, err) }(time.Now())

	transactions, err := s.load(ctx, "total_amount")
	if err != nil {
		return nil, err
	}

	totals = &Totals{
		Total:      query.TotalAmount(transactions),
		DebitTotal: query.TotalDebitAmount(transactions),
		Count:      len(transactions),
	}
	if !filter.IsEmpty() {
		if totals.Total, err = query.TotalAmountByDate(transactions, filter); err != nil {
			s.logger.Warn("stored transaction has an unusable date", "error", err)
			return nil, err
		}
	}
	return totals, nil
}

func (s *transactionQueryService) Average(ctx context.Context) (avg decimal.Decimal, err error) {
	defer func(start time.Time) { s.observe("average_amount", start, err) }(time.Now())

	transactions, err := s.load(ctx, "average_amount")
	if err != nil {
		return decimal.Zero, err
	}
	return query.AverageAmount(transactions), nil
}

func (s *transactionQueryService) DominantType(ctx context.Context) (dominance query.Dominance, err error) {
	defer func(start time.Time) { s.observe("dominant_type", start, err) }(time.Now())

	transactions, err := s.load(ctx, "dominant_type")
	if err != nil {
		return "", err
	}
	return query.DominantType(transactions), nil
}

func (s *transactionQueryService) BusiestMonth(ctx context.Context, transactionType models.TransactionType) (month string, err error) {
	defer func(start time.Time) { s.observe("busiest_month", start, err) }(time.Now())

	if transactionType != "" && transactionType != models.TransactionTypeDebit {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, transactionType)
	}

	transactions, err := s.load(ctx, "busiest_month")
	if err != nil {
		return "", err
	}

	if transactionType == models.TransactionTypeDebit {
		return query.MonthWithMostDebitTransactions(transactions)
	}
	return query.MonthWithMostTransactions(transactions)
}

func (s *transactionQueryService) Summary(ctx context.Context) (summary *query.Summary, err error) {
	defer func(start time.Time) { s.observe("summary", start, err) }(time.Now())

	transactions, err := s.load(ctx, "summary")
	if err != nil {
		return nil, err
	}

	result, err := query.Summarize(transactions)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *transactionQueryService) SuggestMerchants(ctx context.Context, name string) (suggestions []string, err error) {
	defer func(start time.Time) { s.observe("suggest_merchants", start, err) }(time.Now())

	transactions, err := s.load(ctx, "suggest_merchants")
	if err != nil {
		return nil, err
	}
	return query.SimilarMerchants(transactions, name, DefaultSuggestionDistance), nil
}
