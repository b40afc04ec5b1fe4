package database

import (
	"testing"

	"txn-query/internal/config"
	"txn-query/internal/models"
)

// SetupTestDB opens an in-memory sqlite store through New and migrates it.
// The pool is pinned to one connection so every query sees the same memory database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		SQLitePath:     ":memory:",
		MaxConnections: 1,
		MaxIdleConns:   1,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedTestTransactions stores transactions in order and returns them with ids assigned
func SeedTestTransactions(t *testing.T, db *DB, transactions ...models.Transaction) []models.Transaction {
	t.Helper()

	if len(transactions) == 0 {
		return transactions
	}
	if err := db.Create(&transactions).Error; err != nil {
		t.Fatalf("failed to seed %d test transactions: %v", len(transactions), err)
	}
	return transactions
}

// CleanupTestDB empties the transactions table
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.Exec("DELETE FROM transactions").Error; err != nil {
		t.Errorf("failed to clean transactions table: %v", err)
	}
}
