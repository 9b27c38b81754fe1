package savingsgoal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/notification"
	"github.com/fintrack/fintrack/internal/uid"
)

var (
	ErrEmptyName      = errors.New("goal name is required")
	ErrInvalidTarget  = errors.New("goal target must be positive")
	ErrInvalidDeposit = errors.New("deposit amount must be positive")
)

// Service exposes savings goal operations.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService builds a savings goal service instance. The notifier may
// be nil; goal-achieved events are then dropped.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Input captures data for creating or updating a goal.
type Input struct {
	Name        string
	TargetCents int64
	Deadline    time.Time
}

// Create provisions a savings goal with nothing saved yet.
func (s *Service) Create(ctx context.Context, userID uid.UID, input Input) (Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Goal{}, ErrEmptyName
	}
	if input.TargetCents <= 0 {
		return Goal{}, ErrInvalidTarget
	}

	now := time.Now().UTC()
	goal := Goal{
		ID:          uid.New(),
		UserID:      userID,
		Name:        name,
		TargetCents: input.TargetCents,
		SavedCents:  0,
		Deadline:    input.Deadline.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return Goal{}, err
	}
	return goal, nil
}

// Get fetches one goal owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uid.UID) (Goal, error) {
	return s.repo.Get(ctx, userID, id)
}

// List returns all goals owned by the user, soonest deadline first.
func (s *Service) List(ctx context.Context, userID uid.UID) ([]Goal, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces the name, target and deadline of a goal.
func (s *Service) Update(ctx context.Context, userID, id uid.UID, input Input) (Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Goal{}, ErrEmptyName
	}
	if input.TargetCents <= 0 {
		return Goal{}, ErrInvalidTarget
	}

	goal, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Goal{}, err
	}
	goal.Name = name
	goal.TargetCents = input.TargetCents
	goal.Deadline = input.Deadline.UTC()

	if err := s.repo.Update(ctx, goal); err != nil {
		return Goal{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Deposit adds to the saved amount of a goal.
func (s *Service) Deposit(ctx context.Context, userID, id uid.UID, amountCents int64) (Goal, error) {
	if amountCents <= 0 {
		return Goal{}, ErrInvalidDeposit
	}

	goal, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Goal{}, err
	}
	wasAchieved := goal.Achieved()
	goal.SavedCents += amountCents

	if err := s.repo.Update(ctx, goal); err != nil {
		return Goal{}, err
	}

	goal, err = s.repo.Get(ctx, userID, id)
	if err != nil {
		return Goal{}, err
	}
	if !wasAchieved && goal.Achieved() && s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindGoalAchieved,
			Destination: userID.String(),
			Body:        "Savings goal reached: " + goal.Name,
		})
	}
	return goal, nil
}

// Delete removes a goal owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id uid.UID) error {
	return s.repo.Delete(ctx, userID, id)
}
