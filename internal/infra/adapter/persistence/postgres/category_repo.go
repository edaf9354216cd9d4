package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

type CategoryRepo struct {
	db Querier
}

func NewCategoryRepo(db Querier) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

func (repo *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	const query = `
SELECT id, name, description
FROM categories
ORDER BY name ASC`
	return repo.queryCategories(ctx, "List", query)
}

func (repo *CategoryRepo) ListActive(ctx context.Context) ([]entity.Category, error) {
	const query = `
SELECT c.id, c.name, c.description
FROM categories c
WHERE EXISTS (SELECT 1 FROM story_categories sc WHERE sc.category_id = c.id)
ORDER BY c.name ASC`
	return repo.queryCategories(ctx, "ListActive", query)
}

func (repo *CategoryRepo) Get(ctx context.Context, id string) (*entity.Category, error) {
	const query = `
SELECT id, name, description
FROM categories
WHERE id = $1
LIMIT 1`
	var cat entity.Category
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &cat, nil
}

func (repo *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	const query = `INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)`
	if _, err := repo.db.ExecContext(ctx, query, category.ID, category.Name, category.Description); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	const query = `UPDATE categories SET name = $2, description = $3 WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete removes the category and its remaining association rows in one
// transaction so no orphaned pairs survive.
func (repo *CategoryRepo) Delete(ctx context.Context, id string) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Delete: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM story_categories WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("Delete: associations: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Delete: commit: %w", err)
	}
	return nil
}

func (repo *CategoryRepo) queryCategories(ctx context.Context, op, query string) ([]entity.Category, error) {
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]entity.Category, 0, 16)
	for rows.Next() {
		var cat entity.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}
