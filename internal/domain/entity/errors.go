package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrCategoryNotFound indicates a category referenced by id does not exist
	ErrCategoryNotFound = errors.New("category not found")

	// ErrRadarConflict indicates an attempt to unpublish the current radar story
	ErrRadarConflict = errors.New("story holds the radar slot and cannot be unpublished")

	// ErrDeleteGuard indicates an attempt to delete a story that is still
	// published, on radar, or recommended
	ErrDeleteGuard = errors.New("cannot delete published, radar, or recommended story")

	// ErrNotPublished indicates a transition that requires a published story
	ErrNotPublished = errors.New("story is not published")

	// ErrInvalidTransition indicates an unknown lifecycle transition
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrAlreadySubscribed indicates the email is already on the subscriber list
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

// ValidationError reports which field failed validation and why, so the
// handler can surface a precise message without parsing error strings.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
