// Package session stores edit sessions in Valkey or in process memory.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raywlfun/WeaviateDBCluster/internal/db"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
)

// store is the consumer interface for session persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Repo implements usecase/session.Store on a key-value database.
// Every Save refreshes the key's TTL.
type Repo struct {
	store store
	ttl   time.Duration
}

// New creates a Valkey-backed session repository.
func New(s store, ttl time.Duration) *Repo {
	return &Repo{store: s, ttl: ttl}
}

// Get loads a session. Returns domain.ErrNotFound for unknown or expired ids.
func (r *Repo) Get(ctx context.Context, id string) (*domsess.Session, error) {
	data, err := r.store.Get(ctx, key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("session GET %s: %w", id, err)
	}
	var s domsess.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

// Save writes a session with the configured TTL.
func (r *Repo) Save(ctx context.Context, s *domsess.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	if err := r.store.SetWithTTL(ctx, key(s.ID), data, r.ttl); err != nil {
		return fmt.Errorf("session SET %s: %w", s.ID, err)
	}
	return nil
}

// Delete removes a session.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, key(id)); err != nil {
		return fmt.Errorf("session DEL %s: %w", id, err)
	}
	return nil
}

// Ping checks the backing database.
func (r *Repo) Ping(ctx context.Context) error {
	return r.store.Ping(ctx) //nolint:wrapcheck // pass-through health check
}

func key(id string) string {
	return domain.KeyPrefix + "session:" + id
}
