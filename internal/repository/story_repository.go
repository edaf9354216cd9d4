package repository

import (
	"context"
	"errors"

	"not-project-backend/internal/domain/entity"
)

// ErrRadarRace indicates that a concurrent caller won the radar promotion
// while this one was selecting a candidate. Callers retry boundedly and
// re-read the winner instead of promoting a second story.
var ErrRadarRace = errors.New("concurrent radar promotion")

// StoryWithRelations represents a story row along with its flattened
// category list and the author's display name.
type StoryWithRelations struct {
	Story           *entity.Story
	Categories      []entity.Category
	AuthorFirstName string
	AuthorLastName  string
}

// StoryFilters contains optional filters for the public story list.
type StoryFilters struct {
	Search      string   // Optional: substring match on title
	Boroughs    []string // Optional: borough membership
	CategoryIDs []string // Optional: at least one matching association
}

// StoryRepository persists stories and owns every write to the
// story_categories association table. All multi-row invariants (radar
// singleton, association replace, guarded delete) are enforced inside
// storage transactions, never with in-process locks.
type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) error
	// Get retrieves a bare story row. Returns (nil, nil) if absent.
	Get(ctx context.Context, id string) (*entity.Story, error)
	// GetWithRelations retrieves a story with categories and author name.
	// Returns (nil, nil) if absent.
	GetWithRelations(ctx context.Context, id string) (*StoryWithRelations, error)
	// List retrieves published stories matching the filters, newest first,
	// with LIMIT/OFFSET pagination.
	List(ctx context.Context, filters StoryFilters, offset, limit int) ([]StoryWithRelations, error)
	// Count returns the number of published stories matching the filters.
	Count(ctx context.Context, filters StoryFilters) (int64, error)
	// ListHidden retrieves unpublished stories, newest first.
	ListHidden(ctx context.Context) ([]StoryWithRelations, error)
	// ListRecommended retrieves up to limit recommended stories.
	ListRecommended(ctx context.Context, limit int) ([]StoryWithRelations, error)
	// Update persists the content fields (title, content, summary, borough,
	// thumbnail) and bumps updated_at. Lifecycle flags are not touched.
	Update(ctx context.Context, story *entity.Story) error

	// SetPublished flips is_published. Unpublishing is rejected with
	// entity.ErrRadarConflict while the story holds the radar slot.
	SetPublished(ctx context.Context, id string, published bool) error
	// SetRecommended flips is_recommended regardless of publish state.
	SetRecommended(ctx context.Context, id string, recommended bool) error
	// PromoteRadar atomically clears the radar flag everywhere and sets it
	// on the target. Fails with entity.ErrNotFound if the target is absent
	// and entity.ErrNotPublished if it is a draft.
	PromoteRadar(ctx context.Context, id string) error
	// FindRadar returns the current radar story, or (nil, nil) if none.
	FindRadar(ctx context.Context) (*StoryWithRelations, error)
	// PromoteRadarCandidate promotes the preferred fallback story
	// (published+recommended first, else any published) and returns it.
	// Returns (nil, nil) when no published story exists. A concurrent
	// promotion surfaces as ErrRadarRace; callers retry and re-read.
	PromoteRadarCandidate(ctx context.Context) (*StoryWithRelations, error)
	// Delete removes the story and its association rows in one
	// transaction. The delete guard is re-checked inside the transaction.
	Delete(ctx context.Context, id string) error

	// ReplaceCategories overwrites the association set for a story:
	// delete-then-insert in one transaction, duplicates collapsed, empty
	// set legal. A nonexistent category id fails the whole replace with
	// entity.ErrCategoryNotFound.
	ReplaceCategories(ctx context.Context, storyID string, categoryIDs []string) error

	// ListSavedBy retrieves the stories a user has bookmarked.
	ListSavedBy(ctx context.Context, userID string) ([]StoryWithRelations, error)
	// IsSavedBy reports whether a save row exists for the pair.
	IsSavedBy(ctx context.Context, storyID, userID string) (bool, error)

	// ListAssetURLs returns every durable asset URL referenced by any
	// story (thumbnails plus in-content references). Used by the orphan
	// sweeper.
	ListAssetURLs(ctx context.Context, publicBaseURL string) ([]string, error)
}
