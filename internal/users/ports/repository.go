package ports

import (
	"context"
	"errors"

	"github.com/Apurer/user-service/internal/users/domain"
)

var (
	// ErrNotFound is returned when the addressed user does not exist, including
	// when a conditional update loses the race against a delete.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned when a conditional create hits a taken id.
	ErrAlreadyExists = errors.New("user already exists")
)

// Repository is the storage gateway for users. Create and Update are
// conditional writes: Create requires the id to be absent, Update requires it
// to be present, and a failed condition is an authoritative "state changed
// under you" signal, never retried here. Delete is idempotent.
type Repository interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// IDGenerator supplies ids for create payloads that omit one.
type IDGenerator interface {
	NewID() string
}
