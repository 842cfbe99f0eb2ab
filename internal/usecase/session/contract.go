package session

import (
	"context"

	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
)

// Store defines the persistence contract for edit sessions.
// Get returns domain.ErrNotFound for unknown or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*domsess.Session, error)
	Save(ctx context.Context, s *domsess.Session) error
	Delete(ctx context.Context, id string) error
}
