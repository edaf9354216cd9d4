package metrics

import "time"

// RecordAssetIngested records one image that was normalized and uploaded.
// Role should be "thumbnail" or "content".
func RecordAssetIngested(role string) {
	AssetsIngestedTotal.WithLabelValues(role).Inc()
}

// RecordIngestFailure records an ingestion failure at the given stage.
// Stage should be "normalize" or "upload".
func RecordIngestFailure(stage string) {
	AssetIngestFailuresTotal.WithLabelValues(stage).Inc()
}

// RecordNormalizeDuration records the time taken to normalize one image.
// Large editor uploads dominate this histogram; a shift to the right
// usually means multi-megabyte phone photos.
func RecordNormalizeDuration(duration time.Duration) {
	AssetNormalizeDuration.Observe(duration.Seconds())
}

// RecordSweep records the outcome of one reconciliation run.
func RecordSweep(duration time.Duration, scanned, deleted, failures int) {
	SweepDuration.Observe(duration.Seconds())
	StoreObjects.Set(float64(scanned))
	if deleted > 0 {
		AssetsSweptTotal.Add(float64(deleted))
	}
	if failures > 0 {
		SweepFailuresTotal.Add(float64(failures))
	}
}

// RecordSweepError records an aborted sweep run.
// Cause should be "list_store" or "list_references".
func RecordSweepError(cause string) {
	SweepErrorsTotal.WithLabelValues(cause).Inc()
}
