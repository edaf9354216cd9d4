package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"not-project-backend/internal/infra/assetstore"
	"not-project-backend/internal/infra/image"
	"not-project-backend/internal/observability/metrics"
	"not-project-backend/internal/observability/tracing"
)

// blobRefPattern matches the temporary object URLs a browser editor embeds
// while the user is composing: blob:https://host/uuid. The match ends at
// the first quote, whitespace, or angle bracket.
var blobRefPattern = regexp.MustCompile(`blob:https?://[^"'\s>]+`)

// Upload is one file received from a multipart story write.
type Upload struct {
	Filename string
	Data     io.Reader
}

// IngestInput carries everything the pipeline needs for one story write.
type IngestInput struct {
	Title        string
	Content      string
	Thumbnail    *Upload
	ContentFiles []Upload
}

// IngestResult is the rewritten content and the stored thumbnail URL.
// ThumbnailURL is empty when no thumbnail was uploaded.
type IngestResult struct {
	Content      string
	ThumbnailURL string
}

// Pipeline normalizes and stores uploaded images, then rewrites the blob
// references in the content to the durable URLs.
type Pipeline struct {
	Store      assetstore.Store
	Normalizer *image.Normalizer
}

// NewPipeline wires the pipeline. Uploads are not retried here; a failed
// put fails the whole write and the client resubmits.
func NewPipeline(store assetstore.Store, normalizer *image.Normalizer) *Pipeline {
	return &Pipeline{
		Store:      store,
		Normalizer: normalizer,
	}
}

// Ingest processes one story write. Every uploaded file is normalized and
// stored; the i-th file's durable URL then replaces every occurrence of the
// i-th blob reference string in the content. A count mismatch is tolerated:
// surplus files are stored but never linked, surplus references survive
// unrewritten, and either case logs a warning. This matches how the public
// editor has always behaved when an image is removed mid-edit.
func (p *Pipeline) Ingest(ctx context.Context, in IngestInput) (IngestResult, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "asset.ingest")
	defer span.End()

	var result IngestResult

	if in.Thumbnail != nil {
		raw, err := io.ReadAll(in.Thumbnail.Data)
		if err != nil {
			return IngestResult{}, fmt.Errorf("%w: thumbnail: %v", ErrIngestion, err)
		}
		// A zero-length part means the client sent the field without a
		// file. Treat it as no thumbnail at all.
		if len(raw) > 0 {
			url, err := p.storeOne(ctx, in.Title, "thumbnail", bytes.NewReader(raw))
			if err != nil {
				return IngestResult{}, err
			}
			result.ThumbnailURL = url
		}
	}

	refs := blobRefPattern.FindAllString(in.Content, -1)
	if len(refs) != len(in.ContentFiles) {
		slog.Warn("blob reference count does not match uploaded file count",
			slog.Int("refs", len(refs)),
			slog.Int("files", len(in.ContentFiles)))
	}
	span.SetAttributes(
		attribute.Int("asset.refs", len(refs)),
		attribute.Int("asset.files", len(in.ContentFiles)),
	)

	content := in.Content
	for i, file := range in.ContentFiles {
		url, err := p.storeOne(ctx, in.Title, "content", file.Data)
		if err != nil {
			return IngestResult{}, err
		}
		if i < len(refs) {
			content = strings.ReplaceAll(content, refs[i], url)
		}
	}
	result.Content = content
	return result, nil
}

// storeOne normalizes a single image and uploads it under a fresh key.
func (p *Pipeline) storeOne(ctx context.Context, title, role string, data io.Reader) (string, error) {
	start := time.Now()
	normalized, err := p.Normalizer.Normalize(ctx, data)
	if err != nil {
		metrics.RecordIngestFailure("normalize")
		return "", fmt.Errorf("%w: %s: %v", ErrIngestion, role, err)
	}
	metrics.RecordNormalizeDuration(time.Since(start))

	key := buildKey(title, role, p.Normalizer.Extension())
	url, err := p.Store.Put(ctx, key, bytes.NewReader(normalized), p.Normalizer.ContentType())
	if err != nil {
		metrics.RecordIngestFailure("upload")
		return "", fmt.Errorf("%w: %s: %v", ErrIngestion, role, err)
	}
	metrics.RecordAssetIngested(role)
	return url, nil
}
