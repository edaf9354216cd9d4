package asset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"not-project-backend/internal/infra/assetstore"
	"not-project-backend/internal/observability/metrics"
	"not-project-backend/internal/observability/tracing"
)

// ReferenceSource yields every asset URL still referenced from story
// content or thumbnails. Satisfied by the story repository.
type ReferenceSource interface {
	ListAssetURLs(ctx context.Context, publicBaseURL string) ([]string, error)
}

// Sweeper deletes stored images that no story references anymore. Editors
// replace thumbnails and drop inline images without any cleanup signal, so
// the worker reconciles storage against the database periodically.
type Sweeper struct {
	Store   assetstore.Store
	Stories ReferenceSource
	// PublicBaseURL is the base under which stored assets are referenced
	// from story content.
	PublicBaseURL string
}

// SweepResult reports one reconciliation run.
type SweepResult struct {
	Scanned  int
	Deleted  int
	Failures int
}

// Sweep lists every stored image, collects every asset URL still
// referenced by a story, and deletes the difference. Deletion failures are
// logged and counted but do not abort the run.
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "asset.sweep")
	defer span.End()

	start := time.Now()
	var result SweepResult

	keys, err := s.Store.List(ctx, keyPrefix)
	if err != nil {
		metrics.RecordSweepError("list_store")
		return result, fmt.Errorf("sweep: list store: %w", err)
	}
	result.Scanned = len(keys)

	urls, err := s.Stories.ListAssetURLs(ctx, s.PublicBaseURL)
	if err != nil {
		metrics.RecordSweepError("list_references")
		return result, fmt.Errorf("sweep: list references: %w", err)
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if key, ok := s.Store.KeyFromURL(u); ok {
			referenced[key] = struct{}{}
		}
	}

	for _, key := range keys {
		if _, ok := referenced[key]; ok {
			continue
		}
		if err := s.Store.Delete(ctx, key); err != nil {
			slog.Error("orphan asset delete failed",
				slog.String("key", key),
				slog.Any("error", err))
			result.Failures++
			continue
		}
		result.Deleted++
	}

	metrics.RecordSweep(time.Since(start), result.Scanned, result.Deleted, result.Failures)
	slog.Info("asset sweep finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("deleted", result.Deleted),
		slog.Int("failures", result.Failures))
	return result, nil
}
