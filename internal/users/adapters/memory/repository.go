package memory

import (
	"context"
	"sync"

	"github.com/Apurer/user-service/internal/users/domain"
	"github.com/Apurer/user-service/internal/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user storage gateway with the same
// conditional-write semantics as the DynamoDB adapter. Used as the fallback
// when no backend is configured, and by tests.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}}
}

// Create inserts the user only when the id is not taken.
func (r *Repository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return ports.ErrAlreadyExists
	}
	r.users[user.ID] = clone(user)
	return nil
}

// Get fetches a user by id.
func (r *Repository) Get(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(user), nil
}

// Update replaces the user only when the id is present.
func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.users[user.ID] = clone(user)
	return clone(user), nil
}

// Delete removes the user if present. Deleting an absent id is not an error.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func clone(user *domain.User) *domain.User {
	copied := *user
	copied.Emails = append([]string(nil), user.Emails...)
	return &copied
}
