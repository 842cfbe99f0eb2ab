package wvadmin

import (
	"context"
	"fmt"
	"sync"
	"time"

	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
	objectuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/object"
)

// ObjectService edits single objects within one session. The session caches
// the property types of the collection last edited. Calls are serialized.
type ObjectService struct {
	mu        sync.Mutex
	sessionID string
	objects   objectUseCase
	sessions  sessionUseCase
	obs       *observer
}

// SessionID returns the id of the bound session. It is empty until the
// first Load or Save.
func (s *ObjectService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Load fetches an object and decodes every property for display.
func (s *ObjectService) Load(ctx context.Context, collection, id, tenant string) (_ ObjectForm, err error) {
	start := time.Now()
	defer func() { s.obs.observe("object.load", start, err) }()

	form, err := s.inSession(ctx, func(sess *domsess.Session) (objectuc.EditForm, error) {
		return s.objects.Load(ctx, sess, collection, id, tenant)
	})
	if err != nil {
		return ObjectForm{}, fmt.Errorf("load object: %w", err)
	}
	return fromInternalForm(form), nil
}

// Save writes edited property values and returns the reloaded object.
// Values of numeric properties may be strings; when any cannot be parsed
// nothing is written and the error lists the offending properties.
func (s *ObjectService) Save(
	ctx context.Context, collection, id, tenant string, edited map[string]any,
) (_ ObjectForm, err error) {
	start := time.Now()
	defer func() { s.obs.observe("object.save", start, err) }()

	form, err := s.inSession(ctx, func(sess *domsess.Session) (objectuc.EditForm, error) {
		return s.objects.Save(ctx, sess, collection, id, tenant, edited)
	})
	if err != nil {
		return ObjectForm{}, fmt.Errorf("save object: %w", err)
	}
	return fromInternalForm(form), nil
}

// Close discards the bound session.
func (s *ObjectService) Close(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("session.close", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID == "" {
		return nil
	}
	if err = s.sessions.Close(ctx, s.sessionID); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	s.sessionID = ""
	return nil
}

// inSession opens the bound session, runs fn and saves the session whatever
// fn returned. A failed session save is logged, not returned.
func (s *ObjectService) inSession(
	ctx context.Context, fn func(*domsess.Session) (objectuc.EditForm, error),
) (objectuc.EditForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Open(ctx, s.sessionID)
	if err != nil {
		return objectuc.EditForm{}, err
	}
	s.sessionID = sess.ID

	form, err := fn(sess)
	if serr := s.sessions.Save(context.WithoutCancel(ctx), sess); serr != nil {
		s.obs.warn("session save failed", "session_id", sess.ID, "error", serr)
	}
	return form, err
}
