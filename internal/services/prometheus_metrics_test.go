package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg).(*PrometheusMetrics)

	m.IncrementCounter(MetricQuerySuccess, map[string]string{"operation": "summary"})
	m.IncrementCounter(MetricQuerySuccess, map[string]string{"operation": "summary"})
	m.IncrementCounter(MetricQueryFailed, map[string]string{"operation": "list", "reason": "invalid_date"})
	m.IncrementCounter(MetricQueryFailed, map[string]string{"operation": "list"})
	m.IncrementCounter(MetricSummaryRun, map[string]string{"status": "success"})
	m.IncrementCounter(MetricSummaryRun, map[string]string{})
	m.IncrementCounter("unknown.metric", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.queriesTotal.WithLabelValues("summary", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queriesTotal.WithLabelValues("list", "failed_invalid_date")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queriesTotal.WithLabelValues("list", "failed_error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.summaryRuns))
}

func TestPrometheusMetrics_GaugesAndDurations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg).(*PrometheusMetrics)

	m.RecordGauge(MetricStoredTransactions, 12, nil)
	m.RecordGauge(MetricStoredTransactions, 3, nil)
	m.RecordGauge(MetricTransactionsImported, 5, nil)
	m.RecordGauge(MetricTransactionsImported, 2, nil)
	m.RecordProcessingTime("summary", 1500*time.Microsecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.storedTransactions))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.transactionsImported))
	assert.Equal(t, 1, testutil.CollectAndCount(m.queryDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestPrometheusMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheusMetrics(prometheus.NewRegistry())
		NewPrometheusMetrics(prometheus.NewRegistry())
	})
}
