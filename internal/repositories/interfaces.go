package repositories

import (
	"context"

	"txn-query/internal/models"
)

// TransactionRepositoryInterface defines the contract for transaction storage.
// Records come back in insertion order; filtering and aggregation happen in the query package.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) error
	List(ctx context.Context) ([]models.Transaction, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
