package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"not-project-backend/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the sweep worker. It embeds
// the standard ConfigMetrics for configuration monitoring and adds metrics
// for sweep job execution tracking.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallback operations by field
//   - worker_config_fallback_active: 1 if any fallback active, 0 otherwise
//
// Worker-specific metrics:
//   - worker_sweep_runs_total: Total sweep runs by status (started/success/failure)
//   - worker_sweep_run_duration_seconds: Duration histogram of sweep execution
//   - worker_sweep_objects_deleted_total: Total orphaned objects deleted
//   - worker_sweep_last_success_timestamp: Unix timestamp of last successful run
type WorkerMetrics struct {
	*config.ConfigMetrics

	// SweepRunsTotal counts sweep runs by status.
	SweepRunsTotal *prometheus.CounterVec

	// SweepRunDurationSeconds measures the duration of sweep execution.
	// Buckets cover a near-empty bucket (sub-second) through a full
	// listing of years of stored assets (minutes).
	SweepRunDurationSeconds prometheus.Histogram

	// SweepObjectsDeletedTotal counts orphaned objects deleted across runs.
	SweepObjectsDeletedTotal prometheus.Counter

	// SweepLastSuccessTimestamp records when a sweep last completed. Alert
	// on staleness here rather than on individual failures.
	SweepLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a WorkerMetrics instance with all metrics
// initialized. Registration happens via promauto at creation time.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_sweep_runs_total",
			Help: "Total number of sweep runs by status (started/success/failure)",
		}, []string{"status"}),

		SweepRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_sweep_run_duration_seconds",
			Help:    "Duration of sweep execution in seconds",
			Buckets: []float64{0.5, 1, 5, 15, 60, 300, 900},
		}),

		SweepObjectsDeletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sweep_objects_deleted_total",
			Help: "Total number of orphaned asset objects deleted across all sweep runs",
		}),

		SweepLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful sweep run",
		}),
	}
}

// MustRegister is a no-op kept for the conventional initialization pattern:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()
//
// Metrics are auto-registered via promauto when created in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {
	// No-op: metrics are auto-registered via promauto
}

// RecordRun increments the sweep run counter for the given status.
// Status should be "started", "success", or "failure".
func (m *WorkerMetrics) RecordRun(status string) {
	m.SweepRunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes the duration of a sweep run in seconds.
func (m *WorkerMetrics) RecordRunDuration(seconds float64) {
	m.SweepRunDurationSeconds.Observe(seconds)
}

// RecordObjectsDeleted adds the number of objects deleted in this run to
// the running total.
func (m *WorkerMetrics) RecordObjectsDeleted(count int) {
	m.SweepObjectsDeletedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful sweep
// completion.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.SweepLastSuccessTimestamp.SetToCurrentTime()
}
