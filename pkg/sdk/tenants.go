package wvadmin

import (
	"context"
	"fmt"
	"time"
)

// TenantService manages tenants of multi-tenancy collections.
type TenantService struct {
	svc tenantUseCase
	obs *observer
}

// List returns the tenants of collection ordered by name.
func (s *TenantService) List(ctx context.Context, collection string) (_ TenantListing, err error) {
	start := time.Now()
	defer func() { s.obs.observe("tenant.list", start, err) }()

	l, err := s.svc.List(ctx, collection)
	if err != nil {
		return TenantListing{}, fmt.Errorf("list tenants: %w", err)
	}
	return fromInternalListing(l), nil
}

// Delete removes the named tenants and their data.
func (s *TenantService) Delete(ctx context.Context, collection string, names ...string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("tenant.delete", start, err) }()

	if err = s.svc.Delete(ctx, collection, names); err != nil {
		return fmt.Errorf("delete tenants: %w", err)
	}
	return nil
}

// Collections returns the collections with multi-tenancy enabled.
func (s *TenantService) Collections(ctx context.Context) (_ []MultiTenantCollection, err error) {
	start := time.Now()
	defer func() { s.obs.observe("tenant.collections", start, err) }()

	cols, err := s.svc.MultiTenantCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list multi-tenancy collections: %w", err)
	}
	return fromInternalCollections(cols), nil
}
