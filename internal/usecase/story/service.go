package story

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"not-project-backend/internal/common/pagination"
	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
	"not-project-backend/internal/usecase/asset"
)

// RecommendedSetSize is how many stories the recommended rail shows.
const RecommendedSetSize = 4

// CreateInput represents the input parameters for creating a new story.
// Thumbnail and ContentFiles come from the multipart request and are fed
// through the asset pipeline before the story is persisted.
type CreateInput struct {
	AuthorID     string
	Title        string
	Content      string
	Summary      string
	Borough      string
	CategoryIDs  []string
	Thumbnail    *asset.Upload
	ContentFiles []asset.Upload
}

// EditInput represents the input parameters for editing a story.
// Fields with nil values will not be updated. A non-nil empty CategoryIDs
// slice clears the category set.
type EditInput struct {
	ID           string
	Title        *string
	Content      *string
	Summary      *string
	Borough      *string
	CategoryIDs  []string
	Thumbnail    *asset.Upload
	ContentFiles []asset.Upload
}

// Service provides story management use cases. Content writes run the
// asset pipeline first so a story is never persisted pointing at blob URLs
// that die with the browser session.
type Service struct {
	Repo   repository.StoryRepository
	Assets *asset.Pipeline
}

// PaginatedResult represents the result of a paginated story query.
type PaginatedResult struct {
	Data       []repository.StoryWithRelations
	Pagination pagination.Metadata
}

// List retrieves published stories with filters and pagination.
func (s *Service) List(ctx context.Context, filters repository.StoryFilters, params pagination.Params) (*PaginatedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count stories: %w", err)
	}
	pagination.UpdateTotalCount(total)

	stories, err := s.Repo.List(ctx, filters, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}

	return &PaginatedResult{
		Data: stories,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// Get retrieves a single story with author and categories.
// Returns ErrStoryNotFound if the story does not exist.
func (s *Service) Get(ctx context.Context, id string) (*repository.StoryWithRelations, error) {
	if id == "" {
		return nil, ErrInvalidStoryID
	}

	story, err := s.Repo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get story: %w", err)
	}
	if story == nil {
		return nil, ErrStoryNotFound
	}
	return story, nil
}

// Detail retrieves a story for the public detail page. Unpublished stories
// are reported as not found so drafts stay invisible without auth. When a
// viewer ID is supplied the bookmark state is looked up alongside.
func (s *Service) Detail(ctx context.Context, id, viewerID string) (*repository.StoryWithRelations, *bool, error) {
	story, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !story.Story.IsPublished {
		return nil, nil, ErrStoryNotFound
	}

	var saved *bool
	if viewerID != "" {
		isSaved, err := s.Repo.IsSavedBy(ctx, id, viewerID)
		if err != nil {
			return nil, nil, fmt.Errorf("check saved state: %w", err)
		}
		saved = &isSaved
	}
	return story, saved, nil
}

// Hidden retrieves every unpublished story for the editor dashboard.
func (s *Service) Hidden(ctx context.Context) ([]repository.StoryWithRelations, error) {
	stories, err := s.Repo.ListHidden(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hidden stories: %w", err)
	}
	return stories, nil
}

// ListSavedBy retrieves the stories a user has saved.
func (s *Service) ListSavedBy(ctx context.Context, userID string) ([]repository.StoryWithRelations, error) {
	stories, err := s.Repo.ListSavedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved stories: %w", err)
	}
	return stories, nil
}

// Create ingests the uploaded images, creates the story in the published
// state, and attaches its categories. Returns a ValidationError for bad
// input and entity.ErrCategoryNotFound for an unknown category.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Story, error) {
	if in.AuthorID == "" {
		return nil, &entity.ValidationError{Field: "authorId", Message: "is required"}
	}
	if in.Title == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}
	borough := entity.NormalizeBorough(in.Borough)
	if err := entity.ValidateBorough(borough); err != nil {
		return nil, err
	}

	ingested, err := s.Assets.Ingest(ctx, asset.IngestInput{
		Title:        in.Title,
		Content:      in.Content,
		Thumbnail:    in.Thumbnail,
		ContentFiles: in.ContentFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest assets: %w", err)
	}

	story := entity.NewStory(uuid.NewString(), in.AuthorID, in.Title,
		ingested.Content, in.Summary, borough, ingested.ThumbnailURL)

	if err := s.Repo.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	if len(in.CategoryIDs) > 0 {
		if err := s.Repo.ReplaceCategories(ctx, story.ID, in.CategoryIDs); err != nil {
			return nil, fmt.Errorf("attach categories: %w", err)
		}
	}
	return story, nil
}

// Edit modifies a story's content fields. Only non-nil fields are updated.
// New uploads run through the asset pipeline against the updated content.
func (s *Service) Edit(ctx context.Context, in EditInput) (*entity.Story, error) {
	if in.ID == "" {
		return nil, ErrInvalidStoryID
	}

	story, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get story: %w", err)
	}
	if story == nil {
		return nil, ErrStoryNotFound
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, &entity.ValidationError{Field: "title", Message: "cannot be empty"}
		}
		story.Title = *in.Title
	}
	if in.Summary != nil {
		story.Summary = *in.Summary
	}
	if in.Borough != nil {
		borough := entity.NormalizeBorough(*in.Borough)
		if err := entity.ValidateBorough(borough); err != nil {
			return nil, err
		}
		story.Borough = borough
	}
	if in.Content != nil {
		story.Content = *in.Content
	}

	if in.Thumbnail != nil || len(in.ContentFiles) > 0 {
		ingested, err := s.Assets.Ingest(ctx, asset.IngestInput{
			Title:        story.Title,
			Content:      story.Content,
			Thumbnail:    in.Thumbnail,
			ContentFiles: in.ContentFiles,
		})
		if err != nil {
			return nil, fmt.Errorf("ingest assets: %w", err)
		}
		story.Content = ingested.Content
		if ingested.ThumbnailURL != "" {
			story.Thumbnail = ingested.ThumbnailURL
		}
	}

	if err := s.Repo.Update(ctx, story); err != nil {
		return nil, fmt.Errorf("update story: %w", err)
	}
	if in.CategoryIDs != nil {
		if err := s.Repo.ReplaceCategories(ctx, story.ID, in.CategoryIDs); err != nil {
			return nil, fmt.Errorf("replace categories: %w", err)
		}
	}
	return story, nil
}
