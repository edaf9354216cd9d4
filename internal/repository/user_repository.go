package repository

import (
	"context"

	"not-project-backend/internal/domain/entity"
)

// UserRepository persists user accounts keyed by the external auth ID.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// Get retrieves a user by id. Returns (nil, nil) if absent.
	Get(ctx context.Context, id string) (*entity.User, error)
	// UpdateName sets the first and last name for an existing user.
	UpdateName(ctx context.Context, id, firstName, lastName string) error
}

// SaveRepository persists story bookmarks.
type SaveRepository interface {
	Create(ctx context.Context, storyID, userID string) error
	Delete(ctx context.Context, storyID, userID string) error
}

// SubscriberRepository persists newsletter signups.
type SubscriberRepository interface {
	// ExistsByEmail reports whether the email is already subscribed.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, sub *entity.Subscriber) error
}
