package category

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	cats map[uid.UID]Category
}

// NewMemoryRepository builds an in-memory category store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{cats: make(map[uid.UID]Category)}
}

func (r *memoryRepository) Create(_ context.Context, cat Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cats[cat.ID] = cat
	return nil
}

func (r *memoryRepository) Get(_ context.Context, userID, id uid.UID) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.cats[id]
	if !ok || cat.UserID != userID {
		return Category{}, ErrNotFound
	}
	return cat, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uid.UID) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var cats []Category
	for _, cat := range r.cats {
		if cat.UserID == userID {
			cats = append(cats, cat)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].CreatedAt.Before(cats[j].CreatedAt) })
	return cats, nil
}

func (r *memoryRepository) Update(_ context.Context, cat Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.cats[cat.ID]
	if !ok || existing.UserID != cat.UserID {
		return ErrNotFound
	}
	cat.CreatedAt = existing.CreatedAt
	cat.UpdatedAt = time.Now().UTC()
	r.cats[cat.ID] = cat
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, userID, id uid.UID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cat, ok := r.cats[id]
	if !ok || cat.UserID != userID {
		return ErrNotFound
	}
	delete(r.cats, id)
	return nil
}
