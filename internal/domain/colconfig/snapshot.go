// Package colconfig models a collection's tunable configuration and turns a
// flat set of field edits into the minimal grouped update the cluster accepts.
package colconfig

// Snapshot is a read-only view of a collection's current configuration.
// A nil section means the collection does not expose that subsystem.
type Snapshot struct {
	Name            string
	Description     string
	InvertedIndex   *InvertedIndex
	MultiTenancy    *MultiTenancy
	Replication     *Replication
	VectorIndexType string
	VectorIndex     *VectorIndex
}

// InvertedIndex is the keyword index configuration.
type InvertedIndex struct {
	BM25B                  float64
	BM25K1                 float64
	CleanupIntervalSeconds int
	StopwordsPreset        StopwordsPreset
	StopwordsAdditions     []string
	StopwordsRemovals      []string
}

// MultiTenancy is the tenant partitioning configuration.
type MultiTenancy struct {
	Enabled              bool
	AutoTenantCreation   bool
	AutoTenantActivation bool
}

// Replication is the replica configuration.
type Replication struct {
	Factor           int
	AsyncEnabled     bool
	DeletionStrategy DeletionStrategy
}

// VectorIndex is the HNSW vector index configuration.
type VectorIndex struct {
	DynamicEfFactor       int
	DynamicEfMin          int
	DynamicEfMax          int
	FilterStrategy        FilterStrategy
	FlatSearchCutoff      int
	VectorCacheMaxObjects int
	PQ                    *PQ
}

// PQ is the product quantizer configuration nested in the vector index.
type PQ struct {
	Enabled       bool
	Centroids     int
	Segments      int
	TrainingLimit int
	Encoder       *PQEncoder
}

// PQEncoder selects how PQ centroids are trained.
type PQEncoder struct {
	Type         EncoderType
	Distribution EncoderDistribution
}
