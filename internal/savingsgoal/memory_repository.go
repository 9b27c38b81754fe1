package savingsgoal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

type memoryRepository struct {
	mu    sync.RWMutex
	goals map[uid.UID]Goal
}

// NewMemoryRepository builds an in-memory goal store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{goals: make(map[uid.UID]Goal)}
}

func (r *memoryRepository) Create(_ context.Context, goal Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[goal.ID] = goal
	return nil
}

func (r *memoryRepository) Get(_ context.Context, userID, id uid.UID) (Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	goal, ok := r.goals[id]
	if !ok || goal.UserID != userID {
		return Goal{}, ErrNotFound
	}
	return goal, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uid.UID) ([]Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var goals []Goal
	for _, goal := range r.goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].Deadline.Before(goals[j].Deadline) })
	return goals, nil
}

func (r *memoryRepository) Update(_ context.Context, goal Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return ErrNotFound
	}
	goal.CreatedAt = existing.CreatedAt
	goal.UpdatedAt = time.Now().UTC()
	r.goals[goal.ID] = goal
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, userID, id uid.UID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal, ok := r.goals[id]
	if !ok || goal.UserID != userID {
		return ErrNotFound
	}
	delete(r.goals, id)
	return nil
}
