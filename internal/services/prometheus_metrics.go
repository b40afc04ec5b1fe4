package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	MetricQuerySuccess         = "query.success"
	MetricQueryFailed          = "query.failed"
	MetricTransactionsImported = "transactions.imported"
	MetricSummaryRun           = "summary.run"
	MetricStoredTransactions   = "transactions.stored"
)

type PrometheusMetrics struct {
	queriesTotal         *prometheus.CounterVec
	queryDuration        *prometheus.HistogramVec
	transactionsImported prometheus.Counter
	storedTransactions   prometheus.Gauge
	summaryRuns          *prometheus.CounterVec
}

// NewPrometheusMetrics registers the service collectors on reg.
// Pass prometheus.DefaultRegisterer to expose them on /metrics.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_queries_total",
				Help: "Total number of transaction queries by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_query_duration_milliseconds",
				Help:    "Transaction query duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 12),
			},
			[]string{"operation"},
		),
		transactionsImported: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transactions_imported_total",
				Help: "Total number of transactions written to the store",
			},
		),
		storedTransactions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "transactions_stored",
				Help: "Number of transactions seen by the last full scan",
			},
		),
		summaryRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_summary_runs_total",
				Help: "Total number of scheduled summary runs",
			},
			[]string{"status"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]

	switch name {
	case MetricQuerySuccess:
		m.queriesTotal.WithLabelValues(operation, "success").Inc()
	case MetricQueryFailed:
		reason := tags["reason"]
		if reason == "" {
			reason = "error"
		}
		m.queriesTotal.WithLabelValues(operation, "failed_"+reason).Inc()
	case MetricSummaryRun:
		if status := tags["status"]; status != "" {
			m.summaryRuns.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.queryDuration.WithLabelValues(name).Observe(float64(duration.Microseconds()) / 1000)
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricStoredTransactions:
		m.storedTransactions.Set(value)
	case MetricTransactionsImported:
		m.transactionsImported.Add(value)
	}
}
