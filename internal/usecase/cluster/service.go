// Package cluster reports nodes, shards and schema of the database cluster.
package cluster

import (
	"context"
	"fmt"
	"sort"

	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
)

// Consistency is the replica comparison of every shard.
type Consistency struct {
	Shards       []domcluster.ShardReplicas `json:"shards"`
	Inconsistent int                        `json:"inconsistent"`
}

// Service builds the cluster panels.
type Service struct {
	inspector Inspector
}

// New creates a cluster service.
func New(inspector Inspector) *Service {
	return &Service{inspector: inspector}
}

// Nodes returns cluster members ordered by name.
func (s *Service) Nodes(ctx context.Context) ([]domcluster.Node, error) {
	nodes, err := s.inspector.Nodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	return nodes, nil
}

// Shards returns every shard replica in the cluster.
func (s *Service) Shards(ctx context.Context) ([]domcluster.Shard, error) {
	nodes, err := s.inspector.Nodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	shards := domcluster.Shards(nodes)
	if shards == nil {
		shards = []domcluster.Shard{}
	}
	return shards, nil
}

// Consistency compares object counts of each shard's replicas.
func (s *Service) Consistency(ctx context.Context) (Consistency, error) {
	nodes, err := s.inspector.Nodes(ctx)
	if err != nil {
		return Consistency{}, fmt.Errorf("list nodes: %w", err)
	}
	shards := domcluster.ShardConsistency(nodes)
	if shards == nil {
		shards = []domcluster.ShardReplicas{}
	}
	return Consistency{Shards: shards, Inconsistent: domcluster.Inconsistent(shards)}, nil
}

// Meta returns the server version and enabled modules.
func (s *Service) Meta(ctx context.Context) (domcluster.Meta, error) {
	m, err := s.inspector.Meta(ctx)
	if err != nil {
		return domcluster.Meta{}, fmt.Errorf("fetch meta: %w", err)
	}
	sort.Strings(m.Modules)
	return m, nil
}

// Properties returns the declared properties of every collection, ordered by collection.
func (s *Service) Properties(ctx context.Context) ([]domcluster.CollectionProperties, error) {
	cols, err := s.inspector.CollectionProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Collection < cols[j].Collection })
	return cols, nil
}
