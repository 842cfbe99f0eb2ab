// Package cluster models node, shard and metadata views of a database cluster.
package cluster

import (
	"sort"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain/property"
)

// Node statuses reported by the cluster.
const (
	NodeHealthy   = "HEALTHY"
	NodeUnhealthy = "UNHEALTHY"
)

// Node is one cluster member with its verbose shard listing.
type Node struct {
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Version     string  `json:"version"`
	GitHash     string  `json:"git_hash"`
	ShardCount  int64   `json:"shard_count"`
	ObjectCount int64   `json:"object_count"`
	Shards      []Shard `json:"shards"`
}

// Shard is one shard replica hosted on a node.
type Shard struct {
	Name           string `json:"name"`
	Collection     string `json:"collection"`
	Node           string `json:"node"`
	ObjectCount    int64  `json:"object_count"`
	IndexingStatus string `json:"indexing_status"`
	QueueLength    int64  `json:"queue_length"`
	Compressed     bool   `json:"compressed"`
}

// Meta is the version and module listing of the node that served the request.
type Meta struct {
	Hostname string   `json:"hostname"`
	Version  string   `json:"version"`
	Modules  []string `json:"modules"`
}

// CollectionProperties lists the properties and vectorizer of one collection.
type CollectionProperties struct {
	Collection string            `json:"collection"`
	Vectorizer string            `json:"vectorizer"`
	Properties []property.Schema `json:"properties"`
}

// Shards flattens the shards of all nodes, ordered by collection, shard and node.
func Shards(nodes []Node) []Shard {
	var out []Shard
	for _, n := range nodes {
		for _, s := range n.Shards {
			s.Node = n.Name
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Collection != b.Collection {
			return a.Collection < b.Collection
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Node < b.Node
	})
	return out
}

// ReplicaCount is the object count of one shard replica.
type ReplicaCount struct {
	Node        string `json:"node"`
	ObjectCount int64  `json:"object_count"`
}

// ShardReplicas groups the replicas of one shard across nodes.
type ShardReplicas struct {
	Collection string         `json:"collection"`
	Shard      string         `json:"shard"`
	Replicas   []ReplicaCount `json:"replicas"`
	Consistent bool           `json:"consistent"`
}

// ShardConsistency groups shard replicas and flags shards whose replicas
// report different object counts. Inconsistent shards sort first.
func ShardConsistency(nodes []Node) []ShardReplicas {
	var out []ShardReplicas
	index := make(map[[2]string]int)
	for _, s := range Shards(nodes) {
		key := [2]string{s.Collection, s.Name}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, ShardReplicas{Collection: s.Collection, Shard: s.Name, Consistent: true})
		}
		r := &out[i]
		if len(r.Replicas) > 0 && r.Replicas[0].ObjectCount != s.ObjectCount {
			r.Consistent = false
		}
		r.Replicas = append(r.Replicas, ReplicaCount{Node: s.Node, ObjectCount: s.ObjectCount})
	}
	sort.SliceStable(out, func(i, j int) bool { return !out[i].Consistent && out[j].Consistent })
	return out
}

// Inconsistent reports how many shards have diverging replicas.
func Inconsistent(shards []ShardReplicas) int {
	n := 0
	for _, s := range shards {
		if !s.Consistent {
			n++
		}
	}
	return n
}
