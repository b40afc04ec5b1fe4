package services

import (
	"context"
	"time"

	"txn-query/internal/models"
	"txn-query/internal/query"

	"github.com/shopspring/decimal"
)

// Totals pairs the (optionally date-filtered) total with the debit total of the whole store.
type Totals struct {
	Total      decimal.Decimal `json:"total_amount"`
	DebitTotal decimal.Decimal `json:"total_debit_amount"`
	Count      int             `json:"transaction_count"`
}

// TransactionQueryServiceInterface answers every query over the stored transaction sequence
type TransactionQueryServiceInterface interface {
	// Import validates and stores a batch, returning how many records were written
	Import(ctx context.Context, transactions []models.Transaction) (int, error)
	List(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, error)
	FindByID(ctx context.Context, transactionID string) (*models.Transaction, error)
	Descriptions(ctx context.Context) ([]string, error)
	UniqueTypes(ctx context.Context) ([]models.TransactionType, error)
	Totals(ctx context.Context, filter models.DateFilter) (*Totals, error)
	Average(ctx context.Context) (decimal.Decimal, error)
	DominantType(ctx context.Context) (query.Dominance, error)
	// BusiestMonth returns the "YYYY-MM" key with the most records; an empty type means all records
	BusiestMonth(ctx context.Context, transactionType models.TransactionType) (string, error)
	Summary(ctx context.Context) (*query.Summary, error)
	SuggestMerchants(ctx context.Context, name string) ([]string, error)
}

// MetricsRecorderInterface records service metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// TransactionGeneratorInterface generates realistic transaction data for seeding
type TransactionGeneratorInterface interface {
	Generate(count int, startDate, endDate time.Time) []models.Transaction
	GetMerchantPool() []MerchantInfo
}
