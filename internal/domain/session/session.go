// Package session holds per-user edit state: the collection being edited and
// its cached property type map.
package session

import (
	"maps"
	"time"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain/property"
)

// Session is the explicit edit context passed to every edit operation.
// It is owned by one request at a time and is not safe for concurrent use.
type Session struct {
	ID         string           `json:"id"`
	Collection string           `json:"collection,omitempty"`
	TypeMap    property.TypeMap `json:"type_map,omitempty"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// New creates an empty session.
func New(id string) *Session {
	return &Session{ID: id}
}

// TypeMapFor returns the cached type map when it belongs to collection.
func (s *Session) TypeMapFor(collection string) (property.TypeMap, bool) {
	if s.TypeMap == nil || s.Collection != collection {
		return nil, false
	}
	return s.TypeMap, true
}

// Remember caches m for collection, replacing whatever was cached before.
func (s *Session) Remember(collection string, m property.TypeMap) {
	s.Collection = collection
	s.TypeMap = m
}

// Forget drops the cached type map.
func (s *Session) Forget() {
	s.Collection = ""
	s.TypeMap = nil
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.TypeMap = maps.Clone(s.TypeMap)
	return &c
}
