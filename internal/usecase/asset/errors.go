// Package asset implements the image ingestion pipeline: uploaded files
// are normalized, stored durably, and their temporary blob references in
// story content are rewritten to durable URLs.
package asset

import "errors"

// ErrIngestion indicates that an uploaded image could not be processed or
// stored. The story write that carried the upload must not proceed.
var ErrIngestion = errors.New("asset ingestion failed")
