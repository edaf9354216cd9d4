// Package user provides use cases for account management and newsletter
// signups.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

// Sentinel errors for user use case operations.
var (
	// ErrUserNotFound indicates that the requested user was not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUserID indicates that the provided user ID is empty.
	ErrInvalidUserID = errors.New("invalid user ID")
)

// CreateInput represents the input parameters for creating a user. The ID
// comes from the external auth provider.
type CreateInput struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// SubscribeInput represents the input parameters for a newsletter signup.
type SubscribeInput struct {
	Email string
	Phone string
}

// Service provides user and subscriber use cases.
type Service struct {
	Repo        repository.UserRepository
	Subscribers repository.SubscriberRepository
}

// Create registers a user account for an externally authenticated identity.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.User, error) {
	if in.ID == "" {
		return nil, &entity.ValidationError{Field: "id", Message: "is required"}
	}
	if !validEmail(in.Email) {
		return nil, &entity.ValidationError{Field: "email", Message: "is invalid"}
	}
	user := &entity.User{
		ID:        in.ID,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, ErrInvalidUserID
	}
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateName sets the display name for an existing user.
func (s *Service) UpdateName(ctx context.Context, id, firstName, lastName string) error {
	if id == "" {
		return ErrInvalidUserID
	}
	if err := s.Repo.UpdateName(ctx, id, firstName, lastName); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user name: %w", err)
	}
	return nil
}

// Subscribe adds an email to the newsletter list. A duplicate signup
// returns entity.ErrAlreadySubscribed; callers treat that as success so the
// form never reveals whether an address was already on the list.
func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (*entity.Subscriber, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validEmail(email) {
		return nil, &entity.ValidationError{Field: "email", Message: "is invalid"}
	}

	exists, err := s.Subscribers.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check subscriber: %w", err)
	}
	if exists {
		return nil, entity.ErrAlreadySubscribed
	}

	sub := &entity.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Subscribers.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subscriber: %w", err)
	}
	return sub, nil
}

// validEmail applies a minimal shape check. Real validation happens when
// the first newsletter bounces.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t\n")
}
