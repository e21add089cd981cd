package application

import (
	"context"
	"errors"

	apierrors "github.com/Apurer/user-service/internal/shared/errors"
	"github.com/Apurer/user-service/internal/users/domain"
	"github.com/Apurer/user-service/internal/users/ports"
)

// Service runs the per-route request pipelines: schema validation, existence
// checks, the email-retention guard, and conditional persistence. Every
// expected violation comes back as an APIError for the terminal translator;
// unexpected storage failures pass through untouched.
type Service struct {
	repo ports.Repository
	ids  ports.IDGenerator
}

func NewService(repo ports.Repository, ids ports.IDGenerator) *Service {
	return &Service{repo: repo, ids: ids}
}

// Create validates the payload and inserts the user if the id is free. A
// missing or empty id is generated before validation runs, so the full
// schema applies either way.
func (s *Service) Create(ctx context.Context, payload map[string]any) (*domain.User, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	if raw, ok := payload["id"]; !ok || raw == nil || raw == "" {
		payload["id"] = s.ids.NewID()
	}
	user, fieldErrs := domain.ValidateUser(payload)
	if len(fieldErrs) > 0 {
		return nil, apierrors.NewInvalidPayload(fieldErrs)
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ports.ErrAlreadyExists) {
			return nil, apierrors.ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Get fetches a user by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update replaces the stored user. Stages run in order: fetch, validate,
// email-retention guard, conditional write. The write condition catches a
// record deleted between fetch and persist and reports it as not found.
func (s *Service) Update(ctx context.Context, id string, payload map[string]any) (*domain.User, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.ErrUserNotFound
		}
		return nil, err
	}
	incoming, fieldErrs := domain.ValidateUser(payload)
	if len(fieldErrs) > 0 {
		return nil, apierrors.NewInvalidPayload(fieldErrs)
	}
	if incoming.ID != id {
		return nil, apierrors.ErrInvalidPayload.WithMessage("User ID in payload does not match ID in URL")
	}
	if err := domain.CheckEmailRetention(existing, incoming); err != nil {
		return nil, apierrors.ErrInvalidEmailDeletion
	}
	updated, err := s.repo.Update(ctx, incoming)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.ErrUserNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a user. Deleting an absent user still succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
