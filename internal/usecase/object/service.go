// Package object loads objects into edit forms and saves edited forms back.
package object

import (
	"context"
	"fmt"
	"sort"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain/property"
	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
	"github.com/raywlfun/WeaviateDBCluster/internal/metrics"
)

// Field is one editable property.
type Field struct {
	Name  string       `json:"name"`
	Type  property.Tag `json:"type"`
	Value any          `json:"value"`
}

// EditForm is an object prepared for editing. Fields are ordered by name.
type EditForm struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	Tenant     string         `json:"tenant,omitempty"`
	Fields     []Field        `json:"fields"`
	Raw        map[string]any `json:"raw"`
}

// Service handles the object edit flow.
type Service struct {
	schemas SchemaFetcher
	objects ObjectStore
}

// New creates an object edit service.
func New(schemas SchemaFetcher, objects ObjectStore) *Service {
	return &Service{schemas: schemas, objects: objects}
}

// Load fetches an object and decodes every property for display.
func (s *Service) Load(ctx context.Context, sess *domsess.Session, collection, id, tenant string) (EditForm, error) {
	id, err := domobj.ParseID(id)
	if err != nil {
		return EditForm{}, err
	}
	types, err := s.typeMap(ctx, sess, collection)
	if err != nil {
		return EditForm{}, err
	}
	obj, err := s.objects.FetchObject(ctx, collection, id, tenant)
	if err != nil {
		return EditForm{}, fmt.Errorf("fetch object: %w", err)
	}
	return buildForm(obj, types), nil
}

// Save encodes edited values and writes them to the object, then reloads it.
//
// Properties not present in edited are left untouched. When any int or number
// value cannot be encoded nothing is written and the error lists the offending
// properties.
func (s *Service) Save(
	ctx context.Context, sess *domsess.Session, collection, id, tenant string, edited map[string]any,
) (EditForm, error) {
	id, err := domobj.ParseID(id)
	if err != nil {
		return EditForm{}, err
	}
	if len(edited) == 0 {
		return EditForm{}, fmt.Errorf("%w: no properties to save", domain.ErrValidation)
	}
	types, err := s.typeMap(ctx, sess, collection)
	if err != nil {
		return EditForm{}, err
	}

	encoded, err := encodeAll(edited, types)
	if err != nil {
		metrics.ObjectSaveTotal.WithLabelValues("rejected").Inc()
		return EditForm{}, err
	}

	if err := s.objects.UpdateObjectProperties(ctx, collection, id, tenant, encoded); err != nil {
		metrics.ObjectSaveTotal.WithLabelValues("error").Inc()
		return EditForm{}, fmt.Errorf("update object: %w", err)
	}
	metrics.ObjectSaveTotal.WithLabelValues("saved").Inc()

	obj, err := s.objects.FetchObject(ctx, collection, id, tenant)
	if err != nil {
		return EditForm{}, fmt.Errorf("reload object: %w", err)
	}
	return buildForm(obj, types), nil
}

// typeMap returns the session's cached map for collection, rebuilding it from
// the schema when the session last looked at another collection.
func (s *Service) typeMap(ctx context.Context, sess *domsess.Session, collection string) (property.TypeMap, error) {
	if m, ok := sess.TypeMapFor(collection); ok {
		metrics.TypeMapCacheTotal.WithLabelValues("hit").Inc()
		return m, nil
	}
	metrics.TypeMapCacheTotal.WithLabelValues("miss").Inc()

	schema, err := s.schemas.FetchSchema(ctx, collection)
	if err != nil {
		sess.Forget()
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	m := property.BuildTypeMap(schema)
	sess.Remember(collection, m)
	return m, nil
}

func encodeAll(edited map[string]any, types property.TypeMap) (map[string]any, error) {
	out := make(map[string]any, len(edited))
	var bad []string
	for name, v := range edited {
		enc, ok := property.Encode(v, types.Lookup(name))
		if !ok {
			bad = append(bad, name)
			continue
		}
		out[name] = enc
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, &domain.InvalidPropertyValueError{Properties: bad}
	}
	return out, nil
}

func buildForm(obj domobj.Object, types property.TypeMap) EditForm {
	props := obj.Properties()
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		tag := types.Lookup(name)
		fields = append(fields, Field{Name: name, Type: tag, Value: property.Decode(props[name], tag)})
	}
	return EditForm{
		ID:         obj.ID(),
		Collection: obj.Collection(),
		Tenant:     obj.Tenant(),
		Fields:     fields,
		Raw:        props,
	}
}
