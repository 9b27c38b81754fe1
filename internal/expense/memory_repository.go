package expense

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	expenses map[uid.UID]Expense
}

// NewMemoryRepository builds an in-memory expense store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{expenses: make(map[uid.UID]Expense)}
}

func (r *memoryRepository) Create(_ context.Context, exp Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[exp.ID] = exp
	return nil
}

func (r *memoryRepository) Get(_ context.Context, userID, id uid.UID) (Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exp, ok := r.expenses[id]
	if !ok || exp.UserID != userID {
		return Expense{}, ErrNotFound
	}
	return exp, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uid.UID) ([]Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var exps []Expense
	for _, exp := range r.expenses {
		if exp.UserID == userID {
			exps = append(exps, exp)
		}
	}
	sort.Slice(exps, func(i, j int) bool { return exps[i].CreatedAt.After(exps[j].CreatedAt) })
	return exps, nil
}

func (r *memoryRepository) Update(_ context.Context, exp Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.expenses[exp.ID]
	if !ok || existing.UserID != exp.UserID {
		return ErrNotFound
	}
	exp.CreatedAt = existing.CreatedAt
	exp.UpdatedAt = time.Now().UTC()
	r.expenses[exp.ID] = exp
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, userID, id uid.UID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.expenses[id]
	if !ok || exp.UserID != userID {
		return ErrNotFound
	}
	delete(r.expenses, id)
	return nil
}
