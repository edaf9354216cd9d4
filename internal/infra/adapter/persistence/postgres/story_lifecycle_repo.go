package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

// PostgreSQL error codes the lifecycle operations care about.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func (repo *StoryRepo) SetPublished(ctx context.Context, id string, published bool) error {
	if published {
		const query = `UPDATE stories SET is_published = TRUE, updated_at = now() WHERE id = $1`
		res, err := repo.db.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("SetPublished: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return entity.ErrNotFound
		}
		return nil
	}

	// Unpublish is guarded: the radar story must be demoted first.
	const query = `UPDATE stories SET is_published = FALSE, updated_at = now() WHERE id = $1 AND is_radar = FALSE`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("SetPublished: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		story, err := repo.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("SetPublished: %w", err)
		}
		if story == nil {
			return entity.ErrNotFound
		}
		return entity.ErrRadarConflict
	}
	return nil
}

func (repo *StoryRepo) SetRecommended(ctx context.Context, id string, recommended bool) error {
	const query = `UPDATE stories SET is_recommended = $2, updated_at = now() WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id, recommended)
	if err != nil {
		return fmt.Errorf("SetRecommended: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// PromoteRadar enforces the radar singleton with clear-all-then-set-one in
// a single transaction. No window exists in which two stories are flagged;
// the partial unique index on stories(is_radar) backs the invariant up at
// the storage layer.
func (repo *StoryRepo) PromoteRadar(ctx context.Context, id string) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("PromoteRadar: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var isPublished bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_published FROM stories WHERE id = $1 FOR UPDATE`, id).Scan(&isPublished)
	if err == sql.ErrNoRows {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("PromoteRadar: %w", err)
	}
	if !isPublished {
		return entity.ErrNotPublished
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE stories SET is_radar = FALSE, updated_at = now() WHERE is_radar = TRUE AND id <> $1`, id); err != nil {
		return fmt.Errorf("PromoteRadar: clear: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE stories SET is_radar = TRUE, updated_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("PromoteRadar: set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("PromoteRadar: commit: %w", err)
	}
	return nil
}

func (repo *StoryRepo) FindRadar(ctx context.Context) (*repository.StoryWithRelations, error) {
	query := `SELECT ` + storyColumns + storyFrom + `
WHERE s.is_published = TRUE AND s.is_radar = TRUE
LIMIT 1`
	row := repo.db.QueryRowContext(ctx, query)
	swr, err := scanStoryWithAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindRadar: %w", err)
	}
	if err := repo.attachCategories(ctx, []*repository.StoryWithRelations{swr}); err != nil {
		return nil, fmt.Errorf("FindRadar: %w", err)
	}
	return swr, nil
}

// PromoteRadarCandidate picks the preferred fallback story and flags it as
// radar inside one transaction. Recommended stories win over plain
// published ones. A concurrent promotion trips the partial unique index and
// surfaces as repository.ErrRadarRace so the caller can retry and re-read
// the winner.
func (repo *StoryRepo) PromoteRadarCandidate(ctx context.Context) (*repository.StoryWithRelations, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("PromoteRadarCandidate: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx, `
SELECT id FROM stories
WHERE is_published = TRUE
ORDER BY is_recommended DESC, created_at DESC
LIMIT 1
FOR UPDATE`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("PromoteRadarCandidate: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE stories SET is_radar = TRUE, updated_at = now() WHERE id = $1`, id); err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, repository.ErrRadarRace
		}
		return nil, fmt.Errorf("PromoteRadarCandidate: set: %w", err)
	}
	if err := tx.Commit(); err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, repository.ErrRadarRace
		}
		return nil, fmt.Errorf("PromoteRadarCandidate: commit: %w", err)
	}

	return repo.GetWithRelations(ctx, id)
}

// Delete removes the story after re-checking the delete guard inside the
// transaction. Association and save rows go first; the storage layer has no
// cascade semantics.
func (repo *StoryRepo) Delete(ctx context.Context, id string) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Delete: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var isPublished, isRadar, isRecommended bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_published, is_radar, is_recommended FROM stories WHERE id = $1 FOR UPDATE`, id).
		Scan(&isPublished, &isRadar, &isRecommended)
	if err == sql.ErrNoRows {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if isPublished || isRadar || isRecommended {
		return entity.ErrDeleteGuard
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM story_categories WHERE story_id = $1`, id); err != nil {
		return fmt.Errorf("Delete: categories: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM saves WHERE story_id = $1`, id); err != nil {
		return fmt.Errorf("Delete: saves: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("Delete: story: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Delete: commit: %w", err)
	}
	return nil
}

// ReplaceCategories overwrites the association set in one transaction:
// delete everything, then bulk-insert the desired set with duplicates
// collapsed. A reader never observes the empty intermediate state.
func (repo *StoryRepo) ReplaceCategories(ctx context.Context, storyID string, categoryIDs []string) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceCategories: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM story_categories WHERE story_id = $1`, storyID); err != nil {
		return fmt.Errorf("ReplaceCategories: delete: %w", err)
	}

	if len(categoryIDs) > 0 {
		values := make([]string, len(categoryIDs))
		args := make([]any, 0, len(categoryIDs)+1)
		args = append(args, storyID)
		for i, categoryID := range categoryIDs {
			values[i] = fmt.Sprintf("($1, $%d)", i+2)
			args = append(args, categoryID)
		}
		query := fmt.Sprintf(`
INSERT INTO story_categories (story_id, category_id)
VALUES %s
ON CONFLICT (story_id, category_id) DO NOTHING`, strings.Join(values, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isPgError(err, pgForeignKeyViolation) {
				return entity.ErrCategoryNotFound
			}
			return fmt.Errorf("ReplaceCategories: insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceCategories: commit: %w", err)
	}
	return nil
}

// isPgError reports whether err carries the given PostgreSQL error code.
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
