// Package memory provides the mock in-memory store: ordered slices with
// auto-incrementing identifiers and linear scans by alternate keys. It is a
// stand-in for a real database and holds nothing across restarts.
package memory

import (
	"context"
	"sync"

	"github.com/starterkit/webapi/internal/core/domain"
)

type UserRepository struct {
	mu     sync.RWMutex
	users  []domain.User
	nextID int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1}
}

func (r *UserRepository) List(_ context.Context, skip, limit int) ([]domain.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.users)
	page := pageOf(r.users, skip, limit)
	out := make([]domain.User, len(page))
	copy(out, page)
	return out, total, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Username == username {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	stored.ID = r.nextID
	r.nextID++
	r.users = append(r.users, stored)

	out := stored
	return &out, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			out := r.users[i]
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// pageOf slices xs by skip/limit without going out of bounds.
func pageOf[T any](xs []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(xs) {
		return nil
	}
	end := skip + limit
	if limit <= 0 || end > len(xs) {
		end = len(xs)
	}
	return xs[skip:end]
}
