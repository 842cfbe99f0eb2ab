package wvadmin

import (
	"context"
	"fmt"
	"time"

	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
)

// Node is one cluster member with its shard totals.
type Node struct {
	Name        string
	Status      string
	Version     string
	ShardCount  int64
	ObjectCount int64
}

// ShardReplicas is one shard with the object count each replica reports.
type ShardReplicas struct {
	Collection string
	Shard      string
	Counts     map[string]int64 // node name to object count
	Consistent bool
}

// ClusterService reads node and shard state.
type ClusterService struct {
	svc clusterUseCase
	obs *observer
}

// Nodes returns the cluster members ordered by name.
func (s *ClusterService) Nodes(ctx context.Context) (_ []Node, err error) {
	start := time.Now()
	defer func() { s.obs.observe("cluster.nodes", start, err) }()

	nodes, err := s.svc.Nodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Node{
			Name:        n.Name,
			Status:      n.Status,
			Version:     n.Version,
			ShardCount:  n.ShardCount,
			ObjectCount: n.ObjectCount,
		}
	}
	return out, nil
}

// Consistency compares replica object counts per shard. Inconsistent shards
// come first.
func (s *ClusterService) Consistency(ctx context.Context) (_ []ShardReplicas, err error) {
	start := time.Now()
	defer func() { s.obs.observe("cluster.consistency", start, err) }()

	c, err := s.svc.Consistency(ctx)
	if err != nil {
		return nil, fmt.Errorf("shard consistency: %w", err)
	}
	return fromInternalReplicas(c.Shards), nil
}

func fromInternalReplicas(shards []domcluster.ShardReplicas) []ShardReplicas {
	out := make([]ShardReplicas, len(shards))
	for i, sh := range shards {
		counts := make(map[string]int64, len(sh.Replicas))
		for _, r := range sh.Replicas {
			counts[r.Node] = r.ObjectCount
		}
		out[i] = ShardReplicas{Collection: sh.Collection, Shard: sh.Shard, Counts: counts, Consistent: sh.Consistent}
	}
	return out
}
