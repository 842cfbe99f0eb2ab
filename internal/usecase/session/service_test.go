package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
)

// --- Mocks ---

type mockStore struct {
	sessions  map[string]*domsess.Session
	getErr    error
	saveErr   error
	deleteErr error
	getCalls  int
}

func newMockStore() *mockStore {
	return &mockStore{sessions: map[string]*domsess.Session{}}
}

func (m *mockStore) Get(_ context.Context, id string) (*domsess.Session, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockStore) Save(_ context.Context, s *domsess.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return m.deleteErr
}

const (
	knownID = "0b6f3a52-8f4e-4d7a-9c1e-2a3b4c5d6e7f"
	freshID = "11111111-2222-4333-8444-555555555555"
)

// --- Tests ---

func TestOpen_Existing(t *testing.T) {
	store := newMockStore()
	store.sessions[knownID] = &domsess.Session{ID: knownID, Collection: "Article"}
	svc := New(store)

	s, err := svc.Open(context.Background(), knownID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Collection != "Article" {
		t.Errorf("expected stored session, got %+v", s)
	}
}

func TestOpen_UnknownStartsFresh(t *testing.T) {
	svc := New(newMockStore()).WithIDGenerator(func() string { return freshID })

	s, err := svc.Open(context.Background(), knownID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != freshID {
		t.Errorf("expected fresh id, got %q", s.ID)
	}
}

func TestOpen_MalformedIDSkipsStore(t *testing.T) {
	store := newMockStore()
	svc := New(store).WithIDGenerator(func() string { return freshID })

	for _, id := range []string{"", "not-a-uuid"} {
		s, err := svc.Open(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ID != freshID {
			t.Errorf("expected fresh id, got %q", s.ID)
		}
	}
	if store.getCalls != 0 {
		t.Errorf("store must not be queried, got %d calls", store.getCalls)
	}
}

func TestOpen_StoreError(t *testing.T) {
	store := newMockStore()
	store.getErr = errors.New("conn refused")
	svc := New(store)

	if _, err := svc.Open(context.Background(), knownID); err == nil {
		t.Fatal("expected error")
	}
}

func TestSave_StampsTime(t *testing.T) {
	store := newMockStore()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := New(store).WithClock(func() time.Time { return at })

	s := domsess.New(knownID)
	if err := svc.Save(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.sessions[knownID].UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt = %v", store.sessions[knownID].UpdatedAt)
	}
}

func TestSave_Error(t *testing.T) {
	store := newMockStore()
	store.saveErr = errors.New("boom")
	if err := New(store).Save(context.Background(), domsess.New(knownID)); err == nil {
		t.Fatal("expected error")
	}
}

func TestClose(t *testing.T) {
	store := newMockStore()
	store.sessions[knownID] = domsess.New(knownID)
	if err := New(store).Close(context.Background(), knownID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.sessions[knownID]; ok {
		t.Fatal("session not removed")
	}
}
