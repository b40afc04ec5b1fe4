package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"txn-query/internal/config"
	"txn-query/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			SQLitePath:      filepath.Join(t.TempDir(), "test.db"),
			MaxConnections:  1,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Minute,
		},
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "mysql"})

	assert.ErrorIs(t, err, config.ErrUnknownDriver)
}

func TestInitialize_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := Initialize(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck(context.Background()))
	assert.True(t, db.Migrator().HasTable(&models.Transaction{}))

	SeedTestTransactions(t, db, models.Transaction{
		TransactionID:   "1",
		TransactionDate: "2019-01-01",
		Amount:          decimal.NewFromFloat(12.5),
		TransactionType: models.TransactionTypeDebit,
	})

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetupTestDB_Cleanup(t *testing.T) {
	db := SetupTestDB(t)
	seeded := SeedTestTransactions(t, db,
		models.Transaction{TransactionID: "1", TransactionDate: "2019-01-01", TransactionType: models.TransactionTypeCredit},
		models.Transaction{TransactionID: "2", TransactionDate: "2019-01-02", TransactionType: models.TransactionTypeDebit},
	)
	require.Len(t, seeded, 2)
	assert.NotZero(t, seeded[0].ID)
	assert.Less(t, seeded[0].ID, seeded[1].ID)

	CleanupTestDB(t, db)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHealthCheck_ClosedDatabase(t *testing.T) {
	db, err := Initialize(context.Background(), sqliteConfig(t))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Error(t, db.HealthCheck(context.Background()))
}

func TestCreateIndexes(t *testing.T) {
	db := SetupTestDB(t)

	require.NoError(t, db.CreateIndexes())
	assert.True(t, db.Migrator().HasIndex(&models.Transaction{}, "idx_transactions_transaction_date"))
	require.NoError(t, db.CreateIndexes(), "rerunning is a no-op")
}

func TestCreateIndexes_JoinsFailures(t *testing.T) {
	db := SetupTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Transaction{}))

	err := db.CreateIndexes()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "idx_transactions_transaction_id")
	assert.Contains(t, err.Error(), "idx_transactions_merchant_name")
}
