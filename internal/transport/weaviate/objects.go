package weaviate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
)

func objectPath(collection, id string) string {
	return "/v1/objects/" + url.PathEscape(collection) + "/" + url.PathEscape(id)
}

// FetchObject reads one object. Stored numbers keep their exact text as
// json.Number so an unchanged int64 above 2^53 is written back as read.
func (c *Client) FetchObject(ctx context.Context, collection, id, tenant string) (domobj.Object, error) {
	body, err := c.call(ctx, request{
		op:     "fetch_object",
		method: http.MethodGet,
		path:   objectPath(collection, id),
		query:  tenantQuery(tenant),
	}, domain.ErrObjectNotFound)
	if err != nil {
		return domobj.Object{}, err
	}

	doc := gjson.ParseBytes(body)
	props := map[string]any{}
	if raw := doc.Get("properties"); raw.IsObject() {
		dec := json.NewDecoder(bytes.NewReader([]byte(raw.Raw)))
		dec.UseNumber()
		if err := dec.Decode(&props); err != nil {
			return domobj.Object{}, fmt.Errorf("fetch_object: decode properties: %w", err)
		}
	}

	objID := doc.Get("id").String()
	if objID == "" {
		objID = id
	}
	objTenant := doc.Get("tenant").String()
	if objTenant == "" {
		objTenant = tenant
	}
	return domobj.Reconstruct(
		objID,
		collection,
		objTenant,
		props,
		unixMillis(doc.Get("creationTimeUnix")),
		unixMillis(doc.Get("lastUpdateTimeUnix")),
	), nil
}

// UpdateObjectProperties merges props into the stored object. Properties not
// in props keep their stored values.
func (c *Client) UpdateObjectProperties(ctx context.Context, collection, id, tenant string, props map[string]any) error {
	return c.sdkCall("update_object", domain.ErrObjectNotFound, func() error {
		u := c.sdk.Data().Updater().
			WithClassName(collection).
			WithID(id).
			WithProperties(props).
			WithMerge()
		if tenant != "" {
			u = u.WithTenant(tenant)
		}
		return u.Do(ctx)
	})
}

func unixMillis(r gjson.Result) time.Time {
	if !r.Exists() || r.Int() == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.Int()).UTC()
}
