// Package logging wraps log/slog with the conventions both binaries share:
// JSON output by default (text via LOG_FORMAT), level from LOG_LEVEL, and
// request ID propagation through context so every line emitted while
// serving a request can be correlated.
//
// Typical use:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	// inside a handler
//	logger := logging.WithRequestID(ctx, slog.Default())
//	logger.Info("story published", slog.String("story_id", id))
package logging
