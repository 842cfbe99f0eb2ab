// Package session opens, persists and closes edit sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
)

// Service manages edit session lifecycle.
type Service struct {
	store Store
	newID func() string
	now   func() time.Time
}

// New creates a session service.
func New(store Store) *Service {
	return &Service{store: store, newID: uuid.NewString, now: time.Now}
}

// WithIDGenerator overrides session id generation.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	s.newID = fn
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(fn func() time.Time) *Service {
	s.now = fn
	return s
}

// Open returns the session for id. An empty, malformed, unknown or expired id
// yields a fresh session with a new id; it is not stored until Save.
func (s *Service) Open(ctx context.Context, id string) (*domsess.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domsess.New(s.newID()), nil
	}
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domsess.New(s.newID()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return sess, nil
}

// Save persists sess and stamps its update time.
func (s *Service) Save(ctx context.Context, sess *domsess.Session) error {
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Close discards the session.
func (s *Service) Close(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
