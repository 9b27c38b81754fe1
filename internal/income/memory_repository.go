package income

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

type memoryRepository struct {
	mu      sync.RWMutex
	incomes map[uid.UID]Income
}

// NewMemoryRepository builds an in-memory income store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{incomes: make(map[uid.UID]Income)}
}

func (r *memoryRepository) Create(_ context.Context, inc Income) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incomes[inc.ID] = inc
	return nil
}

func (r *memoryRepository) Get(_ context.Context, userID, id uid.UID) (Income, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inc, ok := r.incomes[id]
	if !ok || inc.UserID != userID {
		return Income{}, ErrNotFound
	}
	return inc, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uid.UID) ([]Income, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var incs []Income
	for _, inc := range r.incomes {
		if inc.UserID == userID {
			incs = append(incs, inc)
		}
	}
	sort.Slice(incs, func(i, j int) bool { return incs[i].ReceivedAt.After(incs[j].ReceivedAt) })
	return incs, nil
}

func (r *memoryRepository) Update(_ context.Context, inc Income) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.incomes[inc.ID]
	if !ok || existing.UserID != inc.UserID {
		return ErrNotFound
	}
	inc.CreatedAt = existing.CreatedAt
	inc.UpdatedAt = time.Now().UTC()
	r.incomes[inc.ID] = inc
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, userID, id uid.UID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inc, ok := r.incomes[id]
	if !ok || inc.UserID != userID {
		return ErrNotFound
	}
	delete(r.incomes, id)
	return nil
}
