package user

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByVerifyToken(ctx context.Context, token string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, id string, u User) (User, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]User, 0, len(seed))}
	for _, u := range seed {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		r.storage = append(r.storage, u)
	}
	return r
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.storage {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.storage {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByVerifyToken(ctx context.Context, token string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.storage {
		if u.VerifyToken != "" && u.VerifyToken == token {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.storage = append(r.storage, u)
	return u, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			u.ID = id
			u.CreatedAt = r.storage[i].CreatedAt
			r.storage[i] = u
			return u, nil
		}
	}
	return User{}, ErrNotFound
}
