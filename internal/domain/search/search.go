// Package search models keyword and hybrid queries against one collection.
package search

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
)

// Mode is the search strategy.
type Mode string

// Search modes.
const (
	// Keyword ranks by BM25 over the inverted index.
	Keyword Mode = "keyword"
	// Hybrid fuses BM25 with vector similarity, weighted by alpha.
	Hybrid Mode = "hybrid"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Keyword || m == Hybrid
}

// Search parameter limits.
const (
	MaxQueryLength = 4096
	DefaultLimit   = 3
	MaxLimit       = 100
	DefaultAlpha   = 0.5
)

// Request is a validated search query.
type Request struct {
	collection string
	tenant     string
	query      string
	mode       Mode
	alpha      float64
	limit      int
}

// NewRequest validates and normalizes search parameters.
// Defaults: mode=keyword, limit=3, alpha=0.5. A nil alpha takes the default;
// alpha is ignored for keyword searches.
func NewRequest(collection, tenant, query string, m Mode, alpha *float64, limit int) (Request, error) {
	if collection == "" {
		return Request{}, fmt.Errorf("%w: collection is required", domain.ErrValidation)
	}
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrValidation, MaxQueryLength)
	}
	if m == "" {
		m = Keyword
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid search mode %q", domain.ErrValidation, m)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Request{}, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, MaxLimit)
	}
	a := DefaultAlpha
	if alpha != nil {
		a = *alpha
	}
	if m == Hybrid && (a < 0 || a > 1) {
		return Request{}, fmt.Errorf("%w: alpha must be between 0 and 1", domain.ErrValidation)
	}
	return Request{collection: collection, tenant: tenant, query: query, mode: m, alpha: a, limit: limit}, nil
}

// Collection returns the searched collection.
func (r Request) Collection() string { return r.collection }

// Tenant returns the tenant to search, or "" for single-tenant collections.
func (r Request) Tenant() string { return r.tenant }

// Query returns the search text.
func (r Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r Request) Mode() Mode { return r.mode }

// Alpha returns the vector weight of a hybrid search: 0 is pure keyword,
// 1 pure vector.
func (r Request) Alpha() float64 { return r.alpha }

// Limit returns the maximum number of hits.
func (r Request) Limit() int { return r.limit }

// Hit is one matching object with its ranking metadata.
type Hit struct {
	ID           string         `json:"id"`
	Score        float64        `json:"score"`
	ExplainScore string         `json:"explain_score,omitempty"`
	Distance     *float64       `json:"distance,omitempty"`
	IsConsistent *bool          `json:"is_consistent,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Properties   map[string]any `json:"properties"`
	// OriginalScore is the pre-fusion score of a hybrid hit.
	OriginalScore *float64 `json:"original_score,omitempty"`
}

// Result is the answer to one search request.
type Result struct {
	Mode Mode
	Hits []Hit
	Took time.Duration
}

var originalScorePattern = regexp.MustCompile(`original score ([\d.]+)`)

// OriginalScore extracts the pre-fusion score from a hybrid score explanation.
func OriginalScore(explain string) (float64, bool) {
	m := originalScorePattern.FindStringSubmatch(explain)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
