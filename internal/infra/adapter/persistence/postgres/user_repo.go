package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

type UserRepo struct {
	db Querier
}

func NewUserRepo(db Querier) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `INSERT INTO users (id, email, first_name, last_name) VALUES ($1, $2, $3, $4)`
	if _, err := repo.db.ExecContext(ctx, query, user.ID, user.Email, user.FirstName, user.LastName); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	const query = `
SELECT id, email, first_name, last_name
FROM users
WHERE id = $1
LIMIT 1`
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &user, nil
}

func (repo *UserRepo) UpdateName(ctx context.Context, id, firstName, lastName string) error {
	const query = `UPDATE users SET first_name = $2, last_name = $3 WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id, firstName, lastName)
	if err != nil {
		return fmt.Errorf("UpdateName: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}
