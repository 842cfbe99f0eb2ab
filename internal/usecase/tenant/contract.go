package tenant

import (
	"context"

	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
)

// Store lists and removes tenants of multi-tenancy collections.
type Store interface {
	ListTenants(ctx context.Context, collection string) ([]domtenant.Tenant, error)
	DeleteTenants(ctx context.Context, collection string, names []string) error
	MultiTenantCollections(ctx context.Context) ([]domtenant.Collection, error)
}
