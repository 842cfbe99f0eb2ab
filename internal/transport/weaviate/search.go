package weaviate

import (
	"context"

	"github.com/tidwall/gjson"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
)

var (
	keywordAdditional = []string{"id", "score", "explainScore", "creationTimeUnix", "lastUpdateTimeUnix", "isConsistent"}
	hybridAdditional  = append(append([]string{}, keywordAdditional...), "distance")
)

// Keyword runs a BM25 query.
func (c *Client) Keyword(ctx context.Context, req domsearch.Request) ([]domsearch.Hit, error) {
	return c.search(ctx, "keyword_search", req, keywordAdditional, func(g *graphql.GetBuilder) *graphql.GetBuilder {
		return g.WithBM25(c.sdk.GraphQL().Bm25ArgBuilder().WithQuery(req.Query()))
	})
}

// Hybrid runs a query fusing BM25 with vector similarity.
func (c *Client) Hybrid(ctx context.Context, req domsearch.Request) ([]domsearch.Hit, error) {
	return c.search(ctx, "hybrid_search", req, hybridAdditional, func(g *graphql.GetBuilder) *graphql.GetBuilder {
		h := c.sdk.GraphQL().HybridArgumentBuilder().
			WithQuery(req.Query()).
			WithAlpha(float32(req.Alpha()))
		return g.WithHybrid(h)
	})
}

func (c *Client) search(
	ctx context.Context, op string, req domsearch.Request, extra []string,
	withQuery func(*graphql.GetBuilder) *graphql.GetBuilder,
) ([]domsearch.Hit, error) {
	var data gjson.Result
	err := c.sdkCall(op, domain.ErrNotFound, func() error {
		cls, err := c.sdk.Schema().ClassGetter().WithClassName(req.Collection()).Do(ctx)
		if err != nil {
			return err
		}
		fields := append(selectFields(cls.Properties), additional(extra...))

		g := c.sdk.GraphQL().Get().
			WithClassName(req.Collection()).
			WithFields(fields...).
			WithLimit(req.Limit())
		if req.Tenant() != "" {
			g = g.WithTenant(req.Tenant())
		}
		var resp *models.GraphQLResponse
		resp, err = withQuery(g).Do(ctx)
		if err != nil {
			return err
		}
		data, err = graphqlData(op, resp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return parseHits(data.Get("Get." + req.Collection())), nil
}

func parseHits(list gjson.Result) []domsearch.Hit {
	hits := []domsearch.Hit{}
	list.ForEach(func(_, item gjson.Result) bool {
		add := item.Get("_additional")
		hit := domsearch.Hit{
			ID:           add.Get("id").String(),
			Score:        add.Get("score").Float(),
			ExplainScore: add.Get("explainScore").String(),
			CreatedAt:    unixMillis(add.Get("creationTimeUnix")),
			UpdatedAt:    unixMillis(add.Get("lastUpdateTimeUnix")),
			Properties:   map[string]any{},
		}
		if d := add.Get("distance"); d.Exists() && d.Type == gjson.Number {
			f := d.Float()
			hit.Distance = &f
		}
		if ic := add.Get("isConsistent"); ic.IsBool() {
			b := ic.Bool()
			hit.IsConsistent = &b
		}
		item.ForEach(func(k, v gjson.Result) bool {
			if k.String() != "_additional" {
				hit.Properties[k.String()] = v.Value()
			}
			return true
		})
		hits = append(hits, hit)
		return true
	})
	return hits
}
