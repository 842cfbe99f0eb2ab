package object

import (
	"context"

	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain/property"
)

// SchemaFetcher reads a collection's declared properties.
type SchemaFetcher interface {
	FetchSchema(ctx context.Context, collection string) ([]property.Schema, error)
}

// ObjectStore reads and patches single objects.
// FetchObject returns domain.ErrObjectNotFound for a missing object.
type ObjectStore interface {
	FetchObject(ctx context.Context, collection, id, tenant string) (domobj.Object, error)
	UpdateObjectProperties(ctx context.Context, collection, id, tenant string, props map[string]any) error
}
