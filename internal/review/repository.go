package review

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("review not found")
)

type Repository interface {
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
	GetByProductAndEmail(ctx context.Context, productID, email string) (Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	Create(ctx context.Context, r Review) (Review, error)
	Update(ctx context.Context, id string, r Review) (Review, error)
	Delete(ctx context.Context, id string) error
	// ListTopRated returns reviews with rating >= minRating, newest first,
	// at most limit entries.
	ListTopRated(ctx context.Context, minRating, limit int) ([]Review, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Review
}

func NewInMemoryRepository(seed []Review) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Review, 0, len(seed))}
	for _, rev := range seed {
		if rev.ID == "" {
			rev.ID = uuid.NewString()
		}
		r.storage = append(r.storage, rev)
	}
	return r
}

func (r *InMemoryRepository) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, 0)
	for _, rev := range r.storage {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *InMemoryRepository) GetByProductAndEmail(ctx context.Context, productID, email string) (Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rev := range r.storage {
		if rev.ProductID == productID && rev.UserEmail == email {
			return rev, nil
		}
	}
	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rev := range r.storage {
		if rev.ID == id {
			return rev, nil
		}
	}
	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rev.ID == "" {
		rev.ID = uuid.NewString()
	}
	r.storage = append(r.storage, rev)
	return rev, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			rev.ID = id
			r.storage[i] = rev
			return rev, nil
		}
	}
	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListTopRated(ctx context.Context, minRating, limit int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, 0)
	for _, rev := range r.storage {
		if rev.Rating >= minRating {
			out = append(out, rev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
