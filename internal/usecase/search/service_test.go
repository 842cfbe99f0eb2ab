package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
)

// --- Mocks ---

type mockSearcher struct {
	hits  []domsearch.Hit
	err   error
	calls []domsearch.Mode
}

func (m *mockSearcher) Keyword(_ context.Context, _ domsearch.Request) ([]domsearch.Hit, error) {
	m.calls = append(m.calls, domsearch.Keyword)
	return m.hits, m.err
}

func (m *mockSearcher) Hybrid(_ context.Context, _ domsearch.Request) ([]domsearch.Hit, error) {
	m.calls = append(m.calls, domsearch.Hybrid)
	return m.hits, m.err
}

func fixedClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(40 * time.Millisecond)
		return t
	}
}

func mustRequest(t *testing.T, m domsearch.Mode) domsearch.Request {
	t.Helper()
	req, err := domsearch.NewRequest("Article", "", "vector database", m, nil, 0)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return req
}

// --- Tests ---

func TestSearch_Keyword(t *testing.T) {
	m := &mockSearcher{hits: []domsearch.Hit{{ID: "a", Score: 1.2}}}
	svc := New(m)
	svc.now = fixedClock()

	res, err := svc.Search(context.Background(), mustRequest(t, domsearch.Keyword))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.calls) != 1 || m.calls[0] != domsearch.Keyword {
		t.Errorf("calls = %v", m.calls)
	}
	if res.Took != 40*time.Millisecond || len(res.Hits) != 1 || res.Mode != domsearch.Keyword {
		t.Errorf("result = %+v", res)
	}
}

func TestSearch_HybridOriginalScore(t *testing.T) {
	m := &mockSearcher{hits: []domsearch.Hit{
		{ID: "a", ExplainScore: "(Result Set keyword,bm25) Document a: original score 2.5, normalized score: 0.7"},
		{ID: "b", ExplainScore: "no explanation"},
	}}
	res, err := New(m).Search(context.Background(), mustRequest(t, domsearch.Hybrid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Hits[0].OriginalScore == nil || *res.Hits[0].OriginalScore != 2.5 {
		t.Errorf("hit a original score = %v", res.Hits[0].OriginalScore)
	}
	if res.Hits[1].OriginalScore != nil {
		t.Errorf("hit b original score = %v", *res.Hits[1].OriginalScore)
	}
}

func TestSearch_EmptyHits(t *testing.T) {
	res, err := New(&mockSearcher{}).Search(context.Background(), mustRequest(t, domsearch.Keyword))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Hits == nil || len(res.Hits) != 0 {
		t.Errorf("hits = %#v, want empty slice", res.Hits)
	}
}

func TestSearch_Error(t *testing.T) {
	m := &mockSearcher{err: domain.ErrNotFound}
	if _, err := New(m).Search(context.Background(), mustRequest(t, domsearch.Hybrid)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
