package ports

import (
	"context"

	"github.com/Apurer/user-service/internal/users/domain"
)

// Service exposes the user use cases to transport adapters. Create and Update
// take the raw decoded payload so the schema validator can see missing fields
// and unrecognized keys.
type Service interface {
	Create(ctx context.Context, payload map[string]any) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, payload map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
