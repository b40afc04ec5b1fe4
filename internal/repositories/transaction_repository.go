package repositories

import (
	"context"
	"errors"
	"fmt"

	"txn-query/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNilTransaction = errors.New("transaction cannot be nil")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create stores a single transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if transaction == nil {
		return ErrNilTransaction
	}
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch stores every transaction in one database transaction. Nothing is written if any
// record fails validation.
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			return fmt.Errorf("transaction %d (%q): %w", i, transactions[i].TransactionID, err)
		}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}
		return nil
	})
}

// List returns every stored transaction in insertion order
func (r *transactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// DeleteAll removes every stored transaction
func (r *transactionRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}
