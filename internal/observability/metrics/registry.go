package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Asset pipeline metrics track image ingestion on story writes
var (
	// AssetsIngestedTotal counts normalized and uploaded images by role
	AssetsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assets_ingested_total",
			Help: "Total number of images ingested by the asset pipeline",
		},
		[]string{"role"}, // role: thumbnail, content
	)

	// AssetIngestFailuresTotal counts ingestion failures by stage
	AssetIngestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_ingest_failures_total",
			Help: "Total number of asset ingestion failures",
		},
		[]string{"stage"}, // stage: normalize, upload
	)

	// AssetNormalizeDuration measures time to decode, resize, and re-encode
	// one image
	AssetNormalizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "asset_normalize_duration_seconds",
			Help:    "Time taken to normalize one uploaded image",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)

// Sweeper metrics track the periodic orphan reconciliation run
var (
	// AssetsSweptTotal counts orphaned objects deleted from storage
	AssetsSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assets_swept_total",
			Help: "Total number of orphaned assets deleted by the sweeper",
		},
	)

	// SweepFailuresTotal counts objects the sweeper failed to delete
	SweepFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_sweep_failures_total",
			Help: "Total number of orphan deletions that failed",
		},
	)

	// SweepDuration measures the duration of one full reconciliation run
	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "asset_sweep_duration_seconds",
			Help:    "Duration of one asset sweep run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// SweepErrorsTotal counts aborted sweep runs by cause
	SweepErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_sweep_errors_total",
			Help: "Total number of aborted sweep runs",
		},
		[]string{"cause"}, // cause: list_store, list_references
	)

	// StoreObjects tracks the number of objects currently in the asset store
	StoreObjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "asset_store_objects",
			Help: "Number of objects in the asset store at the last sweep",
		},
	)
)
