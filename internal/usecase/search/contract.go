package search

import (
	"context"

	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
)

// Searcher runs keyword and hybrid queries against a collection.
type Searcher interface {
	Keyword(ctx context.Context, req domsearch.Request) ([]domsearch.Hit, error)
	Hybrid(ctx context.Context, req domsearch.Request) ([]domsearch.Hit, error)
}
