package colconfig

import (
	"context"

	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
)

// ConfigStore reads and writes collection configuration.
// ApplyConfig must touch only the groups present in the update.
type ConfigStore interface {
	FetchConfig(ctx context.Context, collection string) (domcfg.Snapshot, error)
	ApplyConfig(ctx context.Context, collection string, u domcfg.Update) error
}

// CollectionStore lists and drops collections.
type CollectionStore interface {
	ListCollections(ctx context.Context) ([]string, error)
	DeleteCollection(ctx context.Context, collection string) error
}
