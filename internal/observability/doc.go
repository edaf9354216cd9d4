// Package observability holds the logging, metrics, tracing, and SLO
// instrumentation shared by the API and the sweep worker.
//
// Subpackages:
//   - logging: structured logging with slog and request ID propagation
//   - metrics: Prometheus recorders for the asset pipeline and sweeps
//   - tracing: OpenTelemetry spans for requests and asset operations
//   - slo: service level objective gauges fed by the HTTP middleware
//
// Example usage:
//
//	import (
//	    "not-project-backend/internal/observability/logging"
//	    "not-project-backend/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordAssetIngested("thumbnail")
//	}
package observability
