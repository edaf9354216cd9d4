package postgres

import (
	"context"
	"fmt"

	"not-project-backend/internal/repository"
)

type SaveRepo struct {
	db Querier
}

func NewSaveRepo(db Querier) repository.SaveRepository {
	return &SaveRepo{db: db}
}

func (repo *SaveRepo) Create(ctx context.Context, storyID, userID string) error {
	// Saving twice is a no-op rather than an error.
	const query = `
INSERT INTO saves (story_id, user_id, created_at)
VALUES ($1, $2, now())
ON CONFLICT (story_id, user_id) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, storyID, userID); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *SaveRepo) Delete(ctx context.Context, storyID, userID string) error {
	const query = `DELETE FROM saves WHERE story_id = $1 AND user_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, storyID, userID); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
