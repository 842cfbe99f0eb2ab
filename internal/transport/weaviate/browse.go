package weaviate

import (
	"context"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
)

// ListObjects returns up to limit objects of collection starting at offset.
// Numbers are decoded as float64; the listing is for display only.
func (c *Client) ListObjects(ctx context.Context, collection, tenant string, limit, offset int) ([]domobj.Object, error) {
	out := []domobj.Object{}
	err := c.sdkCall("list_objects", domain.ErrNotFound, func() error {
		g := c.sdk.Data().ObjectsGetter().
			WithClassName(collection).
			WithLimit(limit).
			WithOffset(offset)
		if tenant != "" {
			g = g.WithTenant(tenant)
		}
		objs, err := g.Do(ctx)
		if err != nil {
			return err
		}
		for _, o := range objs {
			if o == nil {
				continue
			}
			props, _ := o.Properties.(map[string]any)
			out = append(out, domobj.Reconstruct(
				o.ID.String(), collection, o.Tenant, props,
				millis(o.CreationTimeUnix), millis(o.LastUpdateTimeUnix),
			))
		}
		return nil
	})
	return out, err
}

// CountObjects returns the number of objects in collection, or in one tenant of it.
func (c *Client) CountObjects(ctx context.Context, collection, tenant string) (int64, error) {
	var n int64
	err := c.sdkCall("count_objects", domain.ErrNotFound, func() error {
		a := c.sdk.GraphQL().Aggregate().
			WithClassName(collection).
			WithFields(graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}})
		if tenant != "" {
			a = a.WithTenant(tenant)
		}
		resp, err := a.Do(ctx)
		if err != nil {
			return err
		}
		data, err := graphqlData("count_objects", resp)
		if err != nil {
			return err
		}
		n = data.Get("Aggregate." + collection + ".0.meta.count").Int()
		return nil
	})
	return n, err
}

func millis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
