package browse

import (
	"context"

	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
)

// ObjectLister pages through the objects of a collection, optionally within one tenant.
type ObjectLister interface {
	ListObjects(ctx context.Context, collection, tenant string, limit, offset int) ([]domobj.Object, error)
	CountObjects(ctx context.Context, collection, tenant string) (int64, error)
}

// TenancyReader lists collections with multi-tenancy enabled.
type TenancyReader interface {
	MultiTenantCollections(ctx context.Context) ([]domtenant.Collection, error)
}
