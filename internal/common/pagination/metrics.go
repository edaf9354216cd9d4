package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts paginated listing requests, bucketed by how deep
	// into the archive the client paged.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_pagination_requests_total",
			Help: "Total number of pagination requests",
		},
		[]string{"status", "page_range"},
	)

	// DurationSeconds tracks listing latency per layer so a slow page can
	// be pinned to the handler, the service, or the query.
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_pagination_duration_seconds",
			Help:    "Request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// TotalCount mirrors the published story count from the latest COUNT
	// query.
	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "story_total_count",
			Help: "Current total number of published stories",
		},
	)

	// ErrorsTotal counts listing failures by classified cause.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest counts one listing request.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(
		fmt.Sprintf("%d", statusCode),
		getPageRangeBucket(page),
	).Inc()
}

// RecordDuration observes one operation's latency in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// UpdateTotalCount publishes the latest published story count.
func UpdateTotalCount(count int64) {
	TotalCount.Set(float64(count))
}

// RecordError counts a failure. errorType is one of "validation",
// "database", or "timeout".
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// Coarse buckets keep the label cardinality bounded no matter how deep a
// crawler pages.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
