package weaviate

import (
	"context"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
)

// ListTenants returns the tenants of a multi-tenancy collection.
func (c *Client) ListTenants(ctx context.Context, collection string) ([]tenant.Tenant, error) {
	out := []tenant.Tenant{}
	err := c.sdkCall("list_tenants", domain.ErrNotFound, func() error {
		tenants, err := c.sdk.Schema().TenantsGetter().WithClassName(collection).Do(ctx)
		if err != nil {
			return err
		}
		for _, t := range tenants {
			out = append(out, tenant.Tenant{Name: t.Name, ActivityStatus: t.ActivityStatus})
		}
		return nil
	})
	return out, err
}

// DeleteTenants removes the named tenants and their data.
func (c *Client) DeleteTenants(ctx context.Context, collection string, names []string) error {
	return c.sdkCall("delete_tenants", domain.ErrNotFound, func() error {
		return c.sdk.Schema().TenantsDeleter().WithClassName(collection).WithTenants(names...).Do(ctx)
	})
}
