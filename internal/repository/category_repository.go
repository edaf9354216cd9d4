package repository

import (
	"context"

	"not-project-backend/internal/domain/entity"
)

// CategoryRepository persists categories. Association rows are owned by
// StoryRepository; Delete here removes any remaining associations for the
// category before the row itself.
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	// ListActive returns categories that have at least one associated story.
	ListActive(ctx context.Context) ([]entity.Category, error)
	// Get retrieves a category by id. Returns (nil, nil) if absent.
	Get(ctx context.Context, id string) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
