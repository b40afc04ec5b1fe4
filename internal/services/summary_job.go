package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"txn-query/internal/query"

	"github.com/robfig/cron/v3"
)

const summaryRunTimeout = 30 * time.Second

var ErrJobAlreadyStarted = errors.New("summary job already started")

// SummaryJob logs the store summary on a cron schedule
type SummaryJob struct {
	service TransactionQueryServiceInterface
	metrics MetricsRecorderInterface
	logger  *slog.Logger
	spec    string

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// NewSummaryJob validates spec (standard five-field cron or an @-descriptor such as "@every 1h").
func NewSummaryJob(service TransactionQueryServiceInterface, metrics MetricsRecorderInterface, logger *slog.Logger, spec string) (*SummaryJob, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SummaryJob{
		service: service,
		metrics: metrics,
		logger:  logger,
		spec:    spec,
		cron:    cron.New(),
	}, nil
}

func (j *SummaryJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.started {
		return ErrJobAlreadyStarted
	}

	if _, err := j.cron.AddFunc(j.spec, j.run); err != nil {
		return fmt.Errorf("failed to schedule summary job: %w", err)
	}
	j.cron.Start()
	j.started = true

	j.logger.Info("summary job scheduled", "schedule", j.spec)
	return nil
}

// Stop halts the schedule and waits for a running summary until ctx ends.
func (j *SummaryJob) Stop(ctx context.Context) error {
	j.mu.Lock()
	started := j.started
	j.started = false
	j.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-j.cron.Stop().Done():
		j.logger.Info("summary job stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *SummaryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), summaryRunTimeout)
	defer cancel()

	_, _ = j.RunOnce(ctx)
}

// RunOnce computes and logs one summary
func (j *SummaryJob) RunOnce(ctx context.Context) (*query.Summary, error) {
	summary, err := j.service.Summary(ctx)
	if err != nil {
		j.metrics.IncrementCounter(MetricSummaryRun, map[string]string{"status": "failed"})
		j.logger.Error("scheduled summary failed", "error", err)
		return nil, err
	}

	j.metrics.IncrementCounter(MetricSummaryRun, map[string]string{"status": "success"})
	j.logger.Info("transaction summary",
		"count", summary.Count,
		"total_amount", summary.TotalAmount.StringFixed(2),
		"average_amount", summary.AverageAmount.StringFixed(2),
		"total_debit_amount", summary.TotalDebitAmount.StringFixed(2),
		"dominant_type", summary.DominantType,
		"busiest_month", summary.BusiestMonth,
		"busiest_debit_month", summary.BusiestDebitMonth)

	return summary, nil
}
