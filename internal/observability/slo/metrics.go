// Package slo tracks whether the API is meeting its service level
// objectives. Request outcomes are fed in by the HTTP metrics middleware;
// a background loop periodically folds them into gauges Prometheus can
// alert on.
package slo

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets for the public API.
const (
	// AvailabilitySLO is the target uptime percentage (99.9% allows about
	// 43 minutes of downtime per month).
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the p95 latency target in seconds.
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the p99 latency target in seconds.
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum acceptable 5xx ratio.
	ErrorRateSLO = 0.001
)

var (
	// SLOAvailability is (total - 5xx) / total over the last window.
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p95_seconds",
			Help: "Current p95 latency in seconds, target: 0.200",
		},
	)

	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p99_seconds",
			Help: "Current p99 latency in seconds, target: 0.500",
		},
	)

	// SLOErrorRate is 5xx / total over the last window.
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)
)

// UpdateAvailability sets the availability gauge directly.
func UpdateAvailability(ratio float64) { SLOAvailability.Set(ratio) }

// UpdateLatencyP95 sets the p95 latency gauge directly.
func UpdateLatencyP95(seconds float64) { SLOLatencyP95.Set(seconds) }

// UpdateLatencyP99 sets the p99 latency gauge directly.
func UpdateLatencyP99(seconds float64) { SLOLatencyP99.Set(seconds) }

// UpdateErrorRate sets the error rate gauge directly.
func UpdateErrorRate(ratio float64) { SLOErrorRate.Set(ratio) }

// maxWindowSamples bounds the per-window latency buffer. A window that
// overflows degrades percentile accuracy rather than growing without bound.
const maxWindowSamples = 100_000

// Tracker accumulates request outcomes over a window. Observe is safe for
// concurrent use by request handlers.
type Tracker struct {
	mu        sync.Mutex
	total     int64
	errors    int64
	durations []float64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{durations: make([]float64, 0, 1024)}
}

// Observe records one completed request.
func (t *Tracker) Observe(status int, seconds float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total++
	if status >= 500 {
		t.errors++
	}
	if len(t.durations) < maxWindowSamples {
		t.durations = append(t.durations, seconds)
	}
}

// Flush publishes the window to the SLO gauges and resets it. A window
// with no traffic leaves the gauges untouched so an idle service does not
// report a fake 100% availability spike.
func (t *Tracker) Flush() {
	t.mu.Lock()
	total, errors := t.total, t.errors
	durations := t.durations
	t.total, t.errors = 0, 0
	t.durations = make([]float64, 0, 1024)
	t.mu.Unlock()

	if total == 0 {
		return
	}

	UpdateAvailability(float64(total-errors) / float64(total))
	UpdateErrorRate(float64(errors) / float64(total))

	sort.Float64s(durations)
	UpdateLatencyP95(percentile(durations, 0.95))
	UpdateLatencyP99(percentile(durations, 0.99))
}

// Run flushes the tracker every interval until the context is cancelled.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.Flush()
			return
		case <-ticker.C:
			t.Flush()
		}
	}
}

// percentile uses nearest-rank on a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

var defaultTracker = NewTracker()

// Observe records a request outcome on the process-wide tracker.
func Observe(status int, seconds float64) { defaultTracker.Observe(status, seconds) }

// Start runs the process-wide tracker's flush loop.
func Start(ctx context.Context, interval time.Duration) { defaultTracker.Run(ctx, interval) }
