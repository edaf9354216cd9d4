// Package story provides use cases for managing stories: content writes
// with image ingestion, the publish lifecycle, radar selection, and the
// recommended set.
package story

import "errors"

// Sentinel errors for story use case operations.
var (
	// ErrStoryNotFound indicates that the requested story was not found.
	ErrStoryNotFound = errors.New("story not found")

	// ErrInvalidStoryID indicates that the provided story ID is empty or
	// not a valid identifier.
	ErrInvalidStoryID = errors.New("invalid story ID")
)
