package postgres

import (
	"context"
	"fmt"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

type SubscriberRepo struct {
	db Querier
}

func NewSubscriberRepo(db Querier) repository.SubscriberRepository {
	return &SubscriberRepo{db: db}
}

func (repo *SubscriberRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM subscribers WHERE lower(email) = lower($1))`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByEmail: %w", err)
	}
	return exists, nil
}

func (repo *SubscriberRepo) Create(ctx context.Context, sub *entity.Subscriber) error {
	const query = `
INSERT INTO subscribers (id, email, phone, created_at)
VALUES ($1, $2, $3, $4)`
	if _, err := repo.db.ExecContext(ctx, query, sub.ID, sub.Email, sub.Phone, sub.CreatedAt); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
