package weaviate

import (
	"context"
	"sort"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
)

// verboseOutput asks the nodes endpoint for per-shard detail.
const verboseOutput = "verbose"

// Ready returns nil when the cluster accepts traffic.
func (c *Client) Ready(ctx context.Context) error {
	var ready bool
	err := c.sdkCall("ready", nil, func() error {
		var err error
		ready, err = c.sdk.Misc().ReadyChecker().Do(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if !ready {
		return &domain.RemoteError{Op: "ready", Message: "cluster is not ready"}
	}
	return nil
}

// Version returns the server version reported by the meta endpoint.
func (c *Client) Version(ctx context.Context) (string, error) {
	m, err := c.Meta(ctx)
	if err != nil {
		return "", err
	}
	return m.Version, nil
}

// Meta returns the hostname, version and enabled modules of the serving node.
func (c *Client) Meta(ctx context.Context) (domcluster.Meta, error) {
	var out domcluster.Meta
	err := c.sdkCall("meta", nil, func() error {
		m, err := c.sdk.Misc().MetaGetter().Do(ctx)
		if err != nil {
			return err
		}
		out.Hostname, out.Version = m.Hostname, m.Version
		if mods, ok := m.Modules.(map[string]any); ok {
			for name := range mods {
				out.Modules = append(out.Modules, name)
			}
			sort.Strings(out.Modules)
		}
		return nil
	})
	if out.Modules == nil {
		out.Modules = []string{}
	}
	return out, err
}

// Nodes returns every cluster member with its shards.
func (c *Client) Nodes(ctx context.Context) ([]domcluster.Node, error) {
	out := []domcluster.Node{}
	err := c.sdkCall("nodes", nil, func() error {
		resp, err := c.sdk.Cluster().NodesStatusGetter().WithOutput(verboseOutput).Do(ctx)
		if err != nil {
			return err
		}
		for _, n := range resp.Nodes {
			if n == nil {
				continue
			}
			node := domcluster.Node{Name: n.Name, Version: n.Version, GitHash: n.GitHash, Shards: []domcluster.Shard{}}
			if n.Status != nil {
				node.Status = *n.Status
			}
			if n.Stats != nil {
				node.ShardCount, node.ObjectCount = n.Stats.ShardCount, n.Stats.ObjectCount
			}
			for _, s := range n.Shards {
				if s == nil {
					continue
				}
				node.Shards = append(node.Shards, domcluster.Shard{
					Name:           s.Name,
					Collection:     s.Class,
					Node:           n.Name,
					ObjectCount:    s.ObjectCount,
					IndexingStatus: s.VectorIndexingStatus,
					QueueLength:    s.VectorQueueLength,
					Compressed:     s.Compressed,
				})
			}
			out = append(out, node)
		}
		return nil
	})
	return out, err
}
