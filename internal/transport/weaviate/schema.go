package weaviate

import (
	"context"
	"net/http"
	"sort"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain/property"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
)

// fetchClass returns the raw class definition. A missing class is domain.ErrNotFound.
func (c *Client) fetchClass(ctx context.Context, op, collection string) ([]byte, error) {
	return c.call(ctx, request{op: op, method: http.MethodGet, path: classPath(collection)}, domain.ErrNotFound)
}

// classes returns every class of the cluster schema.
func (c *Client) classes(ctx context.Context, op string) ([]*models.Class, error) {
	var out []*models.Class
	err := c.sdkCall(op, nil, func() error {
		dump, err := c.sdk.Schema().Getter().Do(ctx)
		if err != nil {
			return err
		}
		for _, cls := range dump.Classes {
			if cls != nil {
				out = append(out, cls)
			}
		}
		return nil
	})
	return out, err
}

func schemaProperties(props []*models.Property) []property.Schema {
	out := make([]property.Schema, 0, len(props))
	for _, p := range props {
		if p == nil {
			continue
		}
		out = append(out, property.Schema{
			Name:            p.Name,
			DataType:        p.DataType,
			Description:     p.Description,
			Tokenization:    p.Tokenization,
			IndexFilterable: p.IndexFilterable == nil || *p.IndexFilterable,
			IndexSearchable: p.IndexSearchable == nil || *p.IndexSearchable,
		})
	}
	return out
}

// FetchSchema returns the declared properties of collection.
func (c *Client) FetchSchema(ctx context.Context, collection string) ([]property.Schema, error) {
	var out []property.Schema
	err := c.sdkCall("fetch_schema", domain.ErrNotFound, func() error {
		cls, err := c.sdk.Schema().ClassGetter().WithClassName(collection).Do(ctx)
		if err != nil {
			return err
		}
		out = schemaProperties(cls.Properties)
		return nil
	})
	return out, err
}

// CollectionProperties returns the declared properties and vectorizer of every collection.
func (c *Client) CollectionProperties(ctx context.Context) ([]domcluster.CollectionProperties, error) {
	classes, err := c.classes(ctx, "collection_properties")
	if err != nil {
		return nil, err
	}
	out := make([]domcluster.CollectionProperties, 0, len(classes))
	for _, cls := range classes {
		out = append(out, domcluster.CollectionProperties{
			Collection: cls.Class,
			Vectorizer: cls.Vectorizer,
			Properties: schemaProperties(cls.Properties),
		})
	}
	return out, nil
}

// ListCollections returns all collection names, sorted.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	classes, err := c.classes(ctx, "list_collections")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(classes))
	for _, cls := range classes {
		names = append(names, cls.Class)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteCollection drops collection and all of its objects.
func (c *Client) DeleteCollection(ctx context.Context, collection string) error {
	return c.sdkCall("delete_collection", domain.ErrNotFound, func() error {
		return c.sdk.Schema().ClassDeleter().WithClassName(collection).Do(ctx)
	})
}

// MultiTenantCollections returns the collections with multi-tenancy enabled.
func (c *Client) MultiTenantCollections(ctx context.Context) ([]tenant.Collection, error) {
	classes, err := c.classes(ctx, "multi_tenant_collections")
	if err != nil {
		return nil, err
	}
	out := []tenant.Collection{}
	for _, cls := range classes {
		mt := cls.MultiTenancyConfig
		if mt == nil || !mt.Enabled {
			continue
		}
		out = append(out, tenant.Collection{
			Name:                 cls.Class,
			AutoTenantCreation:   mt.AutoTenantCreation,
			AutoTenantActivation: mt.AutoTenantActivation,
		})
	}
	return out, nil
}
