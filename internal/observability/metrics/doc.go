// Package metrics provides Prometheus metrics for the asset pipeline and
// the storage reconciliation worker.
//
// HTTP request metrics live in the handler layer; this package covers
// what happens to images after upload:
//   - Ingestion counts and failures per role (thumbnail, content)
//   - Image normalization duration
//   - Sweeper runs: orphans deleted, failures, run duration
//
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint of whichever binary links them.
//
// Example usage:
//
//	import "not-project-backend/internal/observability/metrics"
//
//	func ingest(role string) {
//	    start := time.Now()
//	    // ... normalize and upload ...
//	    metrics.RecordAssetIngested(role)
//	    metrics.RecordNormalizeDuration(time.Since(start))
//	}
package metrics
