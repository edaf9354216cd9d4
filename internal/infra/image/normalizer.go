// Package image normalizes uploaded images before they reach durable
// storage: EXIF orientation is applied, oversized images are scaled down,
// and everything is re-encoded as JPEG.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"
)

// ErrDecode marks input that could not be decoded as an image.
var ErrDecode = errors.New("image decode failed")

const (
	// MaxDimension bounds the longer edge after normalization. Smaller
	// images pass through unscaled.
	MaxDimension = 1920
	// JPEGQuality is the re-encode quality.
	JPEGQuality = 80
)

// Normalizer re-encodes images under a concurrency cap. Decoding and
// resizing are memory-heavy, so the semaphore keeps at most maxParallel
// normalizations in flight per process.
type Normalizer struct {
	sem          *semaphore.Weighted
	maxDimension int
}

// NewNormalizer builds a normalizer. maxParallel values below 1 are
// treated as 1.
func NewNormalizer(maxParallel int64) *Normalizer {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Normalizer{
		sem:          semaphore.NewWeighted(maxParallel),
		maxDimension: MaxDimension,
	}
}

// Normalize reads an image, applies its EXIF orientation, scales it to fit
// within MaxDimension on the longer edge without upscaling, and returns it
// as a JPEG. Undecodable input yields ErrDecode.
func (n *Normalizer) Normalize(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := n.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("Normalize: %w", err)
	}
	defer n.sem.Release(1)

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > n.maxDimension || bounds.Dy() > n.maxDimension {
		img = imaging.Fit(img, n.maxDimension, n.maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("Normalize: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType is the MIME type of every normalized image.
func (n *Normalizer) ContentType() string { return "image/jpeg" }

// Extension is the file extension of every normalized image.
func (n *Normalizer) Extension() string { return ".jpg" }
