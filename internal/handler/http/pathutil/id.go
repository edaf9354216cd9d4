// Package pathutil extracts and normalizes URL path segments.
package pathutil

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is not a UUID.
var ErrInvalidID = errors.New("invalid id")

// ExtractID pulls a UUID segment out of a URL path.
//
//	id, err := ExtractID("/stories/s/6f1c.../", "/stories/s/")
//
// The returned ID is the canonical lowercase form, so lookups are
// insensitive to how the client formatted the UUID.
func ExtractID(path, prefix string) (string, error) {
	idStr := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
	if idStr == "" || strings.Contains(idStr, "/") {
		return "", ErrInvalidID
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}

// ExtractSegment pulls a non-empty single path segment (user IDs come from
// the external auth provider and are not UUIDs).
func ExtractSegment(path, prefix string) (string, error) {
	segment := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
	if segment == "" || strings.Contains(segment, "/") {
		return "", ErrInvalidID
	}
	return segment, nil
}
