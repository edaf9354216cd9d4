// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

// storyColumns is the column list shared by every story query, joined with
// the author row for the display name.
const storyColumns = `s.id, s.author_id, s.title, s.content, s.summary, s.borough, s.thumbnail,
       s.is_published, s.is_radar, s.is_recommended, s.is_trashed, s.created_at, s.updated_at,
       u.first_name, u.last_name`

const storyFrom = `
FROM stories s
INNER JOIN users u ON s.author_id = u.id`

type StoryRepo struct {
	db           Querier
	queryBuilder *StoryQueryBuilder
}

func NewStoryRepo(db Querier) repository.StoryRepository {
	return &StoryRepo{
		db:           db,
		queryBuilder: NewStoryQueryBuilder(),
	}
}

func (repo *StoryRepo) Create(ctx context.Context, story *entity.Story) error {
	const query = `
INSERT INTO stories (id, author_id, title, content, summary, borough, thumbnail,
                     is_published, is_radar, is_recommended, is_trashed, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := repo.db.ExecContext(ctx, query,
		story.ID, story.AuthorID, story.Title, story.Content, story.Summary,
		story.Borough, story.Thumbnail, story.IsPublished, story.IsRadar,
		story.IsRecommended, story.IsTrashed, story.CreatedAt, story.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *StoryRepo) Get(ctx context.Context, id string) (*entity.Story, error) {
	const query = `
SELECT id, author_id, title, content, summary, borough, thumbnail,
       is_published, is_radar, is_recommended, is_trashed, created_at, updated_at
FROM stories
WHERE id = $1
LIMIT 1`
	var story entity.Story
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&story.ID, &story.AuthorID, &story.Title, &story.Content, &story.Summary,
			&story.Borough, &story.Thumbnail, &story.IsPublished, &story.IsRadar,
			&story.IsRecommended, &story.IsTrashed, &story.CreatedAt, &story.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &story, nil
}

func (repo *StoryRepo) GetWithRelations(ctx context.Context, id string) (*repository.StoryWithRelations, error) {
	query := `SELECT ` + storyColumns + storyFrom + `
WHERE s.id = $1
LIMIT 1`
	row := repo.db.QueryRowContext(ctx, query, id)
	swr, err := scanStoryWithAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetWithRelations: %w", err)
	}
	if err := repo.attachCategories(ctx, []*repository.StoryWithRelations{swr}); err != nil {
		return nil, fmt.Errorf("GetWithRelations: %w", err)
	}
	return swr, nil
}

func (repo *StoryRepo) List(ctx context.Context, filters repository.StoryFilters, offset, limit int) ([]repository.StoryWithRelations, error) {
	where, args := repo.queryBuilder.BuildWhereClause(filters, true)
	argN := len(args)
	query := fmt.Sprintf(`SELECT `+storyColumns+storyFrom+`
%s
ORDER BY s.created_at DESC
LIMIT $%d OFFSET $%d`, where, argN+1, argN+2)
	args = append(args, limit, offset)
	return repo.queryStories(ctx, "List", query, args...)
}

func (repo *StoryRepo) Count(ctx context.Context, filters repository.StoryFilters) (int64, error) {
	where, args := repo.queryBuilder.BuildWhereClause(filters, true)
	query := `SELECT COUNT(*)` + storyFrom + "\n" + where
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *StoryRepo) ListHidden(ctx context.Context) ([]repository.StoryWithRelations, error) {
	query := `SELECT ` + storyColumns + storyFrom + `
WHERE s.is_published = FALSE
ORDER BY s.created_at DESC`
	return repo.queryStories(ctx, "ListHidden", query)
}

func (repo *StoryRepo) ListRecommended(ctx context.Context, limit int) ([]repository.StoryWithRelations, error) {
	query := `SELECT ` + storyColumns + storyFrom + `
WHERE s.is_recommended = TRUE
ORDER BY s.created_at DESC
LIMIT $1`
	return repo.queryStories(ctx, "ListRecommended", query, limit)
}

func (repo *StoryRepo) Update(ctx context.Context, story *entity.Story) error {
	const query = `
UPDATE stories
SET title = $2, content = $3, summary = $4, borough = $5, thumbnail = $6, updated_at = now()
WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		story.ID, story.Title, story.Content, story.Summary, story.Borough, story.Thumbnail)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *StoryRepo) ListSavedBy(ctx context.Context, userID string) ([]repository.StoryWithRelations, error) {
	query := `SELECT ` + storyColumns + storyFrom + `
INNER JOIN saves sv ON sv.story_id = s.id
WHERE sv.user_id = $1
ORDER BY s.created_at DESC`
	return repo.queryStories(ctx, "ListSavedBy", query, userID)
}

func (repo *StoryRepo) IsSavedBy(ctx context.Context, storyID, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM saves WHERE story_id = $1 AND user_id = $2)`
	var saved bool
	if err := repo.db.QueryRowContext(ctx, query, storyID, userID).Scan(&saved); err != nil {
		return false, fmt.Errorf("IsSavedBy: %w", err)
	}
	return saved, nil
}

func (repo *StoryRepo) ListAssetURLs(ctx context.Context, publicBaseURL string) ([]string, error) {
	const query = `SELECT thumbnail, content FROM stories`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListAssetURLs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	prefix := strings.TrimSuffix(publicBaseURL, "/") + "/"
	var urls []string
	for rows.Next() {
		var thumbnail, content string
		if err := rows.Scan(&thumbnail, &content); err != nil {
			return nil, fmt.Errorf("ListAssetURLs: Scan: %w", err)
		}
		if strings.HasPrefix(thumbnail, prefix) {
			urls = append(urls, thumbnail)
		}
		urls = append(urls, extractURLs(content, prefix)...)
	}
	return urls, rows.Err()
}

// extractURLs collects every occurrence of prefix-rooted URLs embedded in
// rich-text content, cut at the next quote, whitespace, or angle bracket.
func extractURLs(content, prefix string) []string {
	var urls []string
	for i := 0; ; {
		idx := strings.Index(content[i:], prefix)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start + len(prefix)
		for end < len(content) && !strings.ContainsRune(`"' <>`, rune(content[end])) {
			end++
		}
		urls = append(urls, content[start:end])
		i = end
	}
	return urls
}

/* ───────────────────────── scanning helpers ───────────────────────── */

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStoryWithAuthor(row rowScanner) (*repository.StoryWithRelations, error) {
	var story entity.Story
	var swr repository.StoryWithRelations
	err := row.Scan(&story.ID, &story.AuthorID, &story.Title, &story.Content, &story.Summary,
		&story.Borough, &story.Thumbnail, &story.IsPublished, &story.IsRadar,
		&story.IsRecommended, &story.IsTrashed, &story.CreatedAt, &story.UpdatedAt,
		&swr.AuthorFirstName, &swr.AuthorLastName)
	if err != nil {
		return nil, err
	}
	swr.Story = &story
	return &swr, nil
}

func (repo *StoryRepo) queryStories(ctx context.Context, op, query string, args ...any) ([]repository.StoryWithRelations, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.StoryWithRelations, 0, 20)
	var refs []*repository.StoryWithRelations
	for rows.Next() {
		swr, err := scanStoryWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		result = append(result, *swr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range result {
		refs = append(refs, &result[i])
	}
	if err := repo.attachCategories(ctx, refs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// attachCategories loads the category rows for a batch of stories in one
// query and distributes them. Batching avoids the N+1 lookup the obvious
// per-story query would cost on list views.
func (repo *StoryRepo) attachCategories(ctx context.Context, stories []*repository.StoryWithRelations) error {
	if len(stories) == 0 {
		return nil
	}

	placeholders := make([]string, len(stories))
	args := make([]any, len(stories))
	byID := make(map[string]*repository.StoryWithRelations, len(stories))
	for i, s := range stories {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = s.Story.ID
		byID[s.Story.ID] = s
		s.Categories = []entity.Category{}
	}

	query := fmt.Sprintf(`
SELECT sc.story_id, c.id, c.name, c.description
FROM story_categories sc
INNER JOIN categories c ON sc.category_id = c.id
WHERE sc.story_id IN (%s)
ORDER BY c.name ASC`, strings.Join(placeholders, ", "))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("attachCategories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var storyID string
		var cat entity.Category
		if err := rows.Scan(&storyID, &cat.ID, &cat.Name, &cat.Description); err != nil {
			return fmt.Errorf("attachCategories: Scan: %w", err)
		}
		if s, ok := byID[storyID]; ok {
			s.Categories = append(s.Categories, cat)
		}
	}
	return rows.Err()
}
