package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"txn-query/internal/config"
	"txn-query/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(d, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(&models.Transaction{})
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck pings the underlying connection pool.
func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// transactionIndexes back the lookups the query endpoints filter on most
var transactionIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_transactions_transaction_id ON transactions(transaction_id)",
	"CREATE INDEX IF NOT EXISTS idx_transactions_transaction_date ON transactions(transaction_date)",
	"CREATE INDEX IF NOT EXISTS idx_transactions_merchant_name ON transactions(merchant_name)",
}

// CreateIndexes runs every index statement and returns the joined failures
func (db *DB) CreateIndexes() error {
	var errs []error
	for _, stmt := range transactionIndexes {
		if err := db.DB.Exec(stmt).Error; err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", stmt, err))
		}
	}
	return errors.Join(errs...)
}

// Initialize opens the configured store and brings its schema up to date.
// Postgres goes through the SQL migration runner when AUTO_MIGRATE is set and falls back to
// gorm AutoMigrate if that fails. SQLite always uses AutoMigrate.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := migrateSchema(ctx, db, &cfg.Database); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	log.Printf("Database initialized successfully (driver=%s)", cfg.Database.Driver)
	return db, nil
}

func migrateSchema(ctx context.Context, db *DB, cfg *config.DatabaseConfig) error {
	if cfg.Driver == config.DriverPostgres && cfg.AutoMigrate {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}

		err = NewMigrationRunner(sqlDB).Run(ctx)
		if err == nil {
			return nil
		}
		log.Printf("Warning: migration runner failed: %v", err)
		log.Println("Falling back to GORM AutoMigrate...")
	}

	if err := db.AutoMigrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
