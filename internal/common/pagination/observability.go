package pagination

import (
	"log/slog"
	"time"
)

// LogResponse records the outcome of a paginated listing, including how
// many rows the page actually returned.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("paginated listing served",
		"request_id", requestID,
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", returnedCount,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError records a failed paginated listing with its classified cause.
// errorType matches the label passed to RecordError so logs and metrics
// slice the same way.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("paginated listing failed",
		"request_id", requestID,
		"page", params.Page,
		"limit", params.Limit,
		"error", err.Error(),
		"error_type", errorType)
}
