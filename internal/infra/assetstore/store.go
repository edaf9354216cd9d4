// Package assetstore provides durable storage for ingested image assets.
package assetstore

import (
	"context"
	"errors"
	"io"
)

// ErrUpload marks a storage-side upload failure so callers can map it to a
// dedicated response without inspecting SDK error types.
var ErrUpload = errors.New("asset upload failed")

// Store is the durable asset store. Put returns the public URL of the
// stored object; List and Delete operate on object keys for the orphan
// sweeper.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	KeyFromURL(url string) (string, bool)
}
