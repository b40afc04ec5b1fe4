package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrUnknownDriver   = errors.New("unknown database driver")
	ErrInvalidSetting  = errors.New("invalid configuration value")
	ErrUnknownLogLevel = errors.New("unknown log level")
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	Breaker   BreakerConfig
	Seed      SeedConfig
	Report    ReportConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	SQLitePath      string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	AutoMigrate     bool
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// BreakerConfig controls the circuit breaker in front of the transaction store.
type BreakerConfig struct {
	MaxFailures       int
	ResetTimeout      time.Duration
	HalfOpenSuccesses int
}

// SeedConfig controls filling an empty store with generated transactions at startup.
type SeedConfig struct {
	Enabled bool
	Count   int
	Seed    uint64
}

// ReportConfig schedules the periodic summary log line.
type ReportConfig struct {
	Enabled bool
	Cron    string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env file (ENV_FILE overrides the path) and then the process environment.
// Values already present in the environment win over the file.
func Load() *Config {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load %s: %v", envFile, err)
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "localhost"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "transactions.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "txn_user"),
			Password:        getEnv("DB_PASSWORD", "txn_password"),
			Name:            getEnv("DB_NAME", "txn_query"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", false),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatEnv("RATE_LIMIT_PER_SECOND", 20),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 40),
		},
		Breaker: BreakerConfig{
			MaxFailures:       getIntEnv("DB_BREAKER_MAX_FAILURES", 5),
			ResetTimeout:      getDurationEnv("DB_BREAKER_RESET_TIMEOUT", 30*time.Second),
			HalfOpenSuccesses: getIntEnv("DB_BREAKER_HALF_OPEN_SUCCESSES", 3),
		},
		Seed: SeedConfig{
			Enabled: getBoolEnv("SEED_TRANSACTIONS", true),
			Count:   getIntEnv("SEED_COUNT", 50),
			Seed:    uint64(getIntEnv("SEED_RANDOM_SEED", 0)),
		},
		Report: ReportConfig{
			Enabled: getBoolEnv("REPORT_ENABLED", false),
			Cron:    getEnv("REPORT_CRON", "@every 1h"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}
}

// Validate reports the first setting that would stop the server from starting.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("%w: DB_SQLITE_PATH is empty", ErrInvalidSetting)
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver)
	}

	if c.Database.MaxConnections <= 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("%w: database pool sizes must be positive", ErrInvalidSetting)
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidSetting)
	}
	if c.Breaker.MaxFailures <= 0 || c.Breaker.ResetTimeout <= 0 || c.Breaker.HalfOpenSuccesses <= 0 {
		return fmt.Errorf("%w: circuit breaker settings must be positive", ErrInvalidSetting)
	}
	if c.Seed.Enabled && c.Seed.Count <= 0 {
		return fmt.Errorf("%w: SEED_COUNT must be positive", ErrInvalidSetting)
	}
	if c.Report.Enabled && strings.TrimSpace(c.Report.Cron) == "" {
		return fmt.Errorf("%w: REPORT_CRON is empty", ErrInvalidSetting)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	switch c.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.Level)
	}
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c LogConfig) NewLogger() *slog.Logger {
	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
