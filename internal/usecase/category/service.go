// Package category provides use cases for managing story categories.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

// Sentinel errors for category use case operations.
var (
	// ErrCategoryNotFound indicates that the requested category was not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryID indicates that the provided category ID is empty.
	ErrInvalidCategoryID = errors.New("invalid category ID")
)

// CreateInput represents the input parameters for creating a category.
type CreateInput struct {
	Name        string
	Description string
}

// UpdateInput represents the input parameters for updating a category.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID          string
	Name        *string
	Description *string
}

// Service provides category management use cases.
type Service struct {
	Repo repository.CategoryRepository
}

// List retrieves all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListActive retrieves the categories that have at least one story. The
// public filter bar only offers these.
func (s *Service) ListActive(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	return categories, nil
}

// Get retrieves a single category by its ID.
func (s *Service) Get(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, ErrInvalidCategoryID
	}
	category, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create creates a new category.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Category, error) {
	if in.Name == "" {
		return nil, &entity.ValidationError{Field: "name", Message: "is required"}
	}
	category := &entity.Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Update modifies an existing category. Only non-nil fields are updated.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID == "" {
		return ErrInvalidCategoryID
	}
	category, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return &entity.ValidationError{Field: "name", Message: "cannot be empty"}
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}

	if err := s.Repo.Update(ctx, category); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category and its story associations.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidCategoryID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
