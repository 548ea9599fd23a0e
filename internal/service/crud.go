// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// bound and validated payloads, services turn them into rows and call
// the repositories. Every mutation is logged with the entity and id.
package service

import (
	"context"

	"github.com/deppfellow/orderhub/internal/repository"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/rs/zerolog"
)

// Payload is a request body that can build a new row or patch an
// existing one.
type Payload[E any] interface {
	ToModel() *E
	repository.Patch[E]
}

// CRUDService exposes the five entity operations for one table.
type CRUDService[E any, R repository.Row[E]] struct {
	server *server.Server
	repo   *repository.Store[E, R]
	entity string
}

func newCRUDService[E any, R repository.Row[E]](s *server.Server, repo *repository.Store[E, R], entity string) *CRUDService[E, R] {
	return &CRUDService[E, R]{
		server: s,
		repo:   repo,
		entity: entity,
	}
}

func (s *CRUDService[E, R]) logger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = s.server.Logger
	}
	out := l.With().Str("entity", s.entity).Logger()
	return &out
}

// Entity is the singular name used in logs and confirmations.
func (s *CRUDService[E, R]) Entity() string {
	return s.entity
}

// List returns every row ordered by id.
func (s *CRUDService[E, R]) List(ctx context.Context) ([]E, error) {
	return s.repo.List(ctx)
}

// Get returns the row with the given id; see repository.IsNotFound.
func (s *CRUDService[E, R]) Get(ctx context.Context, id int) (*E, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new row built from payload. Fields the payload leaves
// out are stored as NULL; a missing id is assigned by the store.
func (s *CRUDService[E, R]) Create(ctx context.Context, payload Payload[E]) (*E, error) {
	created, err := s.repo.Create(ctx, payload.ToModel())
	if err != nil {
		return nil, err
	}

	s.logger(ctx).Info().
		Int("id", R(created).GetID()).
		Msg("created")

	return created, nil
}

// Update patches the row with the given id. The payload's own id, if
// any, is ignored.
func (s *CRUDService[E, R]) Update(ctx context.Context, id int, payload Payload[E]) (*E, error) {
	updated, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.logger(ctx).Info().
		Int("id", id).
		Msg("updated")

	return updated, nil
}

// Delete removes the row with the given id.
func (s *CRUDService[E, R]) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger(ctx).Info().
		Int("id", id).
		Msg("deleted")

	return nil
}

// Count returns the number of rows.
func (s *CRUDService[E, R]) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
