package wvadmin

import (
	"context"
	"fmt"
	"time"

	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
)

// SearchQuery describes one search. Zero values take the defaults: keyword
// mode, three results and alpha 0.5 for hybrid searches.
type SearchQuery struct {
	Collection string
	Tenant     string
	Text       string
	Hybrid     bool
	Alpha      *float64
	Limit      int
}

// SearchHit is one matching object.
type SearchHit struct {
	ID         string
	Score      float64
	Explain    string
	Distance   *float64
	Properties map[string]any
	// OriginalScore is the pre-fusion score of a hybrid hit.
	OriginalScore *float64
}

// SearchResult is the ranked answer to a SearchQuery.
type SearchResult struct {
	Mode string
	Hits []SearchHit
	Took time.Duration
}

// SearchService runs keyword and hybrid searches.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Search runs q against the cluster.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) (_ SearchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search", start, err) }()

	mode := domsearch.Keyword
	if q.Hybrid {
		mode = domsearch.Hybrid
	}
	req, err := domsearch.NewRequest(q.Collection, q.Tenant, q.Text, mode, q.Alpha, q.Limit)
	if err != nil {
		return SearchResult{}, err
	}
	res, err := s.svc.Search(ctx, req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}

	hits := make([]SearchHit, len(res.Hits))
	for i, h := range res.Hits {
		hits[i] = SearchHit{
			ID:            h.ID,
			Score:         h.Score,
			Explain:       h.ExplainScore,
			Distance:      h.Distance,
			Properties:    h.Properties,
			OriginalScore: h.OriginalScore,
		}
	}
	return SearchResult{Mode: string(res.Mode), Hits: hits, Took: res.Took}, nil
}
