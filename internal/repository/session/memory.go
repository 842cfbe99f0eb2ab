package session

import (
	"context"
	"sync"
	"time"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
)

// Memory is an in-process session store with idle expiry.
// Sessions are copied on the way in and out.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	session   *domsess.Session
	expiresAt time.Time
}

// NewMemory creates an in-memory session store.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

// WithClock overrides the time source.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

// Get loads a session. Returns domain.ErrNotFound for unknown or expired ids.
func (m *Memory) Get(_ context.Context, id string) (*domsess.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return nil, domain.ErrNotFound
	}
	return e.session.Clone(), nil
}

// Save stores a session and refreshes its expiry.
func (m *Memory) Save(_ context.Context, s *domsess.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictExpired()
	m.entries[s.ID] = memoryEntry{session: s.Clone(), expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Delete removes a session.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(_ context.Context) error { return nil }

// Len returns the number of live sessions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictExpired()
	return len(m.entries)
}

func (m *Memory) evictExpired() {
	now := m.now()
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}
