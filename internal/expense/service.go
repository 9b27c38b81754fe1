package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/category"
	"github.com/fintrack/fintrack/internal/uid"
)

var (
	ErrEmptyName            = errors.New("expense name is required")
	ErrInvalidAmount        = errors.New("expense amount must be positive")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	// ErrUnknownCategory is returned when the referenced category does
	// not exist or belongs to another user.
	ErrUnknownCategory = errors.New("unknown budget category")
)

// Service exposes expense operations. Category references are validated
// against the owning user's categories.
type Service struct {
	repo       Repository
	categories *category.Service
}

// NewService builds an expense service instance.
func NewService(repo Repository, categories *category.Service) *Service {
	return &Service{repo: repo, categories: categories}
}

// Input captures data for creating or updating an expense.
type Input struct {
	CategoryID    uid.UID
	Name          string
	AmountCents   int64
	Remark        string
	IsEssential   bool
	PaymentMethod PaymentMethod
}

func (s *Service) validate(ctx context.Context, userID uid.UID, input Input) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrEmptyName
	}
	if input.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if !input.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	if _, err := s.categories.Get(ctx, userID, input.CategoryID); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return ErrUnknownCategory
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

// Create records a new expense for the user.
func (s *Service) Create(ctx context.Context, userID uid.UID, input Input) (Expense, error) {
	if err := s.validate(ctx, userID, input); err != nil {
		return Expense{}, err
	}

	now := time.Now().UTC()
	exp := Expense{
		ID:            uid.New(),
		UserID:        userID,
		CategoryID:    input.CategoryID,
		Name:          strings.TrimSpace(input.Name),
		AmountCents:   input.AmountCents,
		Remark:        strings.TrimSpace(input.Remark),
		IsEssential:   input.IsEssential,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		return Expense{}, err
	}
	return exp, nil
}

// Get fetches one expense owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uid.UID) (Expense, error) {
	return s.repo.Get(ctx, userID, id)
}

// List returns all expenses owned by the user, newest first.
func (s *Service) List(ctx context.Context, userID uid.UID) ([]Expense, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces the mutable fields of an expense.
func (s *Service) Update(ctx context.Context, userID, id uid.UID, input Input) (Expense, error) {
	if err := s.validate(ctx, userID, input); err != nil {
		return Expense{}, err
	}

	exp := Expense{
		ID:            id,
		UserID:        userID,
		CategoryID:    input.CategoryID,
		Name:          strings.TrimSpace(input.Name),
		AmountCents:   input.AmountCents,
		Remark:        strings.TrimSpace(input.Remark),
		IsEssential:   input.IsEssential,
		PaymentMethod: input.PaymentMethod,
	}
	if err := s.repo.Update(ctx, exp); err != nil {
		return Expense{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes an expense owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id uid.UID) error {
	return s.repo.Delete(ctx, userID, id)
}
