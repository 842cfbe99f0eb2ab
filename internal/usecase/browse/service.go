// Package browse reads collections one page at a time.
package browse

import (
	"context"
	"fmt"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
)

// Service handles paginated reads.
type Service struct {
	objects ObjectLister
	tenancy TenancyReader
}

// New creates a browse service.
func New(objects ObjectLister, tenancy TenancyReader) *Service {
	return &Service{objects: objects, tenancy: tenancy}
}

// Page returns one page of collection. Multi-tenancy collections require a
// tenant; single-tenant collections reject one.
func (s *Service) Page(ctx context.Context, collection, tenant string, req domobj.PageRequest) (domobj.Page, error) {
	if collection == "" {
		return domobj.Page{}, fmt.Errorf("%w: collection is required", domain.ErrValidation)
	}
	mt, err := s.multiTenant(ctx, collection)
	if err != nil {
		return domobj.Page{}, err
	}
	switch {
	case mt && tenant == "":
		return domobj.Page{}, fmt.Errorf("%w: collection %s has multi-tenancy enabled; a tenant is required",
			domain.ErrValidation, collection)
	case !mt && tenant != "":
		return domobj.Page{}, fmt.Errorf("%w: collection %s has no tenants", domain.ErrValidation, collection)
	}

	total, err := s.objects.CountObjects(ctx, collection, tenant)
	if err != nil {
		return domobj.Page{}, fmt.Errorf("count objects: %w", err)
	}
	if err := req.CheckInRange(total); err != nil {
		return domobj.Page{}, err
	}

	objs, err := s.objects.ListObjects(ctx, collection, tenant, req.Size(), req.Offset())
	if err != nil {
		return domobj.Page{}, fmt.Errorf("list objects: %w", err)
	}
	if objs == nil {
		objs = []domobj.Object{}
	}
	return domobj.Page{
		Objects:    objs,
		Page:       req.Page(),
		Size:       req.Size(),
		Total:      total,
		TotalPages: domobj.TotalPages(total, req.Size()),
	}, nil
}

func (s *Service) multiTenant(ctx context.Context, collection string) (bool, error) {
	cols, err := s.tenancy.MultiTenantCollections(ctx)
	if err != nil {
		return false, fmt.Errorf("list multi-tenancy collections: %w", err)
	}
	for _, c := range cols {
		if c.Name == collection {
			return true, nil
		}
	}
	return false, nil
}
