package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"txn-query/internal/config"
	"txn-query/internal/database"
	"txn-query/internal/handlers"
	"txn-query/internal/middleware"
	"txn-query/internal/repositories"
	"txn-query/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := cfg.Log.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()
	log.Printf("Database ready (driver=%s)", cfg.Database.Driver)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	transactionRepo := repositories.NewTransactionRepository(db.DB)
	metrics := services.NewPrometheusMetrics(registry)
	breaker := services.NewCircuitBreaker(services.CircuitBreakerConfig{
		MaxFailures:     cfg.Breaker.MaxFailures,
		ResetTimeout:    cfg.Breaker.ResetTimeout,
		HalfOpenMaxSucc: cfg.Breaker.HalfOpenSuccesses,
		OnStateChange: func(from, to services.CircuitState) {
			logger.Warn("Transaction store circuit breaker changed state", "from", from.String(), "to", to.String())
		},
	})
	queryService := services.NewTransactionQueryService(transactionRepo, metrics, logger, services.WithCircuitBreaker(breaker))

	if cfg.Seed.Enabled {
		generator := services.NewTransactionGenerator(cfg.Seed.Seed)
		if _, err := services.SeedIfEmpty(ctx, transactionRepo, queryService, generator, cfg.Seed.Count, time.Now().UTC()); err != nil {
			return err
		}
	}

	if cfg.Report.Enabled {
		job, err := services.NewSummaryJob(queryService, metrics, logger, cfg.Report.Cron)
		if err != nil {
			return err
		}
		if err := job.Start(); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := job.Stop(stopCtx); err != nil {
				logger.Warn("Summary job did not stop cleanly", "error", err)
			}
		}()
		log.Printf("Summary job scheduled (%s)", cfg.Report.Cron)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go rateLimiter.Run(ctx, time.Minute)

	e := newServer(cfg, registry, db, queryService, rateLimiter)

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func newServer(
	cfg *config.Config,
	registry *prometheus.Registry,
	db handlers.HealthChecker,
	queryService services.TransactionQueryServiceInterface,
	rateLimiter *middleware.RateLimiter,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewErrorHandler(registry).Handle

	e.Use(middleware.RequestID())
	e.Use(middleware.NewRequestMetrics(registry).Middleware())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders(middleware.SecurityConfig{HSTS: cfg.IsProduction()}))

	e.GET("/health", handlers.NewHealthCheckHandler(db).HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	api := e.Group("/api/v1", rateLimiter.Middleware())
	handlers.NewTransactionHandler(queryService).RegisterRoutes(api)
	handlers.NewCalculatorHandler().RegisterRoutes(api)

	return e
}
