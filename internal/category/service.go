package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

var (
	// ErrInvalidKind is returned for a category kind outside the known set.
	ErrInvalidKind = errors.New("category kind must be INCOME, EXPENSE or SAVINGS")
	// ErrEmptyName is returned when the category name is blank.
	ErrEmptyName = errors.New("category name is required")
)

// Service exposes budget category operations.
type Service struct {
	repo Repository
}

// NewService builds a category service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to create a category.
type CreateInput struct {
	Name        string
	BudgetLimit int64
	Kind        Kind
	Description string
}

// Create provisions a category owned by the given user.
func (s *Service) Create(ctx context.Context, userID uid.UID, input CreateInput) (Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Category{}, ErrEmptyName
	}
	if !input.Kind.Valid() {
		return Category{}, ErrInvalidKind
	}

	now := time.Now().UTC()
	cat := Category{
		ID:          uid.New(),
		UserID:      userID,
		Name:        name,
		BudgetLimit: input.BudgetLimit,
		Kind:        input.Kind,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, cat); err != nil {
		return Category{}, err
	}
	return cat, nil
}

// Get fetches one category owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uid.UID) (Category, error) {
	return s.repo.Get(ctx, userID, id)
}

// List returns all categories owned by the user.
func (s *Service) List(ctx context.Context, userID uid.UID) ([]Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces the mutable fields of a category.
func (s *Service) Update(ctx context.Context, userID, id uid.UID, input CreateInput) (Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Category{}, ErrEmptyName
	}
	if !input.Kind.Valid() {
		return Category{}, ErrInvalidKind
	}

	cat := Category{
		ID:          id,
		UserID:      userID,
		Name:        name,
		BudgetLimit: input.BudgetLimit,
		Kind:        input.Kind,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.repo.Update(ctx, cat); err != nil {
		return Category{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes a category owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id uid.UID) error {
	return s.repo.Delete(ctx, userID, id)
}
