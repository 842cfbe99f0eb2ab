// Package object holds a single stored object addressed by collection and id.
package object

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
)

// Object is an immutable stored object.
type Object struct {
	id         string
	collection string
	tenant     string
	properties map[string]any
	createdAt  time.Time
	updatedAt  time.Time
}

// ParseID validates an object UUID and returns its canonical form.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidObjectID, raw)
	}
	return id.String(), nil
}

// Reconstruct builds an Object from storage without validation.
func Reconstruct(id, collection, tenant string, properties map[string]any, createdAt, updatedAt time.Time) Object {
	if properties == nil {
		properties = map[string]any{}
	}
	return Object{
		id:         id,
		collection: collection,
		tenant:     tenant,
		properties: properties,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the canonical object UUID.
func (o *Object) ID() string { return o.id }

// Collection returns the owning collection name.
func (o *Object) Collection() string { return o.collection }

// Tenant returns the tenant the object lives in, or "" for single-tenant collections.
func (o *Object) Tenant() string { return o.tenant }

// CreatedAt returns the creation time reported by the cluster.
func (o *Object) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last update time reported by the cluster.
func (o *Object) UpdatedAt() time.Time { return o.updatedAt }

// Properties returns a copy of the stored properties.
func (o *Object) Properties() map[string]any { return maps.Clone(o.properties) }

// Property returns one stored property value.
func (o *Object) Property(name string) (any, bool) {
	v, ok := o.properties[name]
	return v, ok
}
