// Package save provides use cases for story bookmarks.
package save

import (
	"context"
	"fmt"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

// Service provides save and unsave use cases. Listing a user's saved
// stories lives in the story service because it returns story projections.
type Service struct {
	Repo repository.SaveRepository
}

// Save bookmarks a story for a user. Saving the same story twice is a
// no-op.
func (s *Service) Save(ctx context.Context, storyID, userID string) error {
	if err := validate(storyID, userID); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, storyID, userID); err != nil {
		return fmt.Errorf("save story: %w", err)
	}
	return nil
}

// Unsave removes a bookmark. Removing an absent bookmark is a no-op.
func (s *Service) Unsave(ctx context.Context, storyID, userID string) error {
	if err := validate(storyID, userID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, storyID, userID); err != nil {
		return fmt.Errorf("unsave story: %w", err)
	}
	return nil
}

func validate(storyID, userID string) error {
	if storyID == "" {
		return &entity.ValidationError{Field: "storyId", Message: "is required"}
	}
	if userID == "" {
		return &entity.ValidationError{Field: "userId", Message: "is required"}
	}
	return nil
}
