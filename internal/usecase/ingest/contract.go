package ingest

import (
	"context"

	doming "github.com/raywlfun/WeaviateDBCluster/internal/domain/ingest"
)

// CollectionStore creates collections and reports on them.
type CollectionStore interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, spec doming.CollectionSpec) error
	CollectionInfo(ctx context.Context, name string) (doming.Info, error)
}

// BatchWriter imports objects in one batch request.
// Failure indexes are positions within objs.
type BatchWriter interface {
	BatchObjects(ctx context.Context, collection string, objs []doming.Object) ([]doming.Failure, error)
}
