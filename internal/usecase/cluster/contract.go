package cluster

import (
	"context"

	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
)

// Inspector reads node, metadata and schema views of the cluster.
type Inspector interface {
	Nodes(ctx context.Context) ([]domcluster.Node, error)
	Meta(ctx context.Context) (domcluster.Meta, error)
	CollectionProperties(ctx context.Context) ([]domcluster.CollectionProperties, error)
}
