// Package search runs keyword and hybrid queries.
package search

import (
	"context"
	"fmt"
	"time"

	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
	"github.com/raywlfun/WeaviateDBCluster/internal/metrics"
)

// Service dispatches search requests by mode.
type Service struct {
	searcher Searcher
	now      func() time.Time
}

// New creates a search service.
func New(searcher Searcher) *Service {
	return &Service{searcher: searcher, now: time.Now}
}

// Search runs req and reports how long the cluster took to answer.
func (s *Service) Search(ctx context.Context, req domsearch.Request) (domsearch.Result, error) {
	start := s.now()

	var (
		hits []domsearch.Hit
		err  error
	)
	switch req.Mode() {
	case domsearch.Hybrid:
		hits, err = s.searcher.Hybrid(ctx, req)
	default:
		hits, err = s.searcher.Keyword(ctx, req)
	}
	if err != nil {
		return domsearch.Result{}, fmt.Errorf("%s search: %w", req.Mode(), err)
	}

	took := s.now().Sub(start)
	metrics.SearchDuration.WithLabelValues(string(req.Mode())).Observe(took.Seconds())

	if req.Mode() == domsearch.Hybrid {
		for i := range hits {
			if f, ok := domsearch.OriginalScore(hits[i].ExplainScore); ok {
				hits[i].OriginalScore = &f
			}
		}
	}
	if hits == nil {
		hits = []domsearch.Hit{}
	}
	return domsearch.Result{Mode: req.Mode(), Hits: hits, Took: took}, nil
}
