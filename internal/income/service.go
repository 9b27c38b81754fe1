package income

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/category"
	"github.com/fintrack/fintrack/internal/uid"
)

var (
	ErrInvalidSource    = errors.New("unknown income source")
	ErrInvalidFrequency = errors.New("unknown income frequency")
	ErrInvalidAmount    = errors.New("income amount must be positive")
	ErrUnknownCategory  = errors.New("unknown budget category")
)

// Service exposes income operations.
type Service struct {
	repo       Repository
	categories *category.Service
}

// NewService builds an income service instance.
func NewService(repo Repository, categories *category.Service) *Service {
	return &Service{repo: repo, categories: categories}
}

// Input captures data for creating or updating an income record.
type Input struct {
	CategoryID  uid.UID
	Source      Source
	AmountCents int64
	Frequency   Frequency
	ReceivedAt  time.Time
}

func (s *Service) validate(ctx context.Context, userID uid.UID, input Input) error {
	if !input.Source.Valid() {
		return ErrInvalidSource
	}
	if !input.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if input.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if _, err := s.categories.Get(ctx, userID, input.CategoryID); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return ErrUnknownCategory
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

// Create records a new income entry for the user.
func (s *Service) Create(ctx context.Context, userID uid.UID, input Input) (Income, error) {
	if err := s.validate(ctx, userID, input); err != nil {
		return Income{}, err
	}

	now := time.Now().UTC()
	receivedAt := input.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = now
	}

	inc := Income{
		ID:          uid.New(),
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Source:      input.Source,
		AmountCents: input.AmountCents,
		Frequency:   input.Frequency,
		ReceivedAt:  receivedAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		return Income{}, err
	}
	return inc, nil
}

// Get fetches one income record owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uid.UID) (Income, error) {
	return s.repo.Get(ctx, userID, id)
}

// List returns all income records owned by the user, newest first.
func (s *Service) List(ctx context.Context, userID uid.UID) ([]Income, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces the mutable fields of an income record.
func (s *Service) Update(ctx context.Context, userID, id uid.UID, input Input) (Income, error) {
	if err := s.validate(ctx, userID, input); err != nil {
		return Income{}, err
	}

	inc := Income{
		ID:          id,
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Source:      input.Source,
		AmountCents: input.AmountCents,
		Frequency:   input.Frequency,
		ReceivedAt:  input.ReceivedAt.UTC(),
	}
	if err := s.repo.Update(ctx, inc); err != nil {
		return Income{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes an income record owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id uid.UID) error {
	return s.repo.Delete(ctx, userID, id)
}
