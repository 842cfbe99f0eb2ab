// Package tenant reports and manages tenants of multi-tenancy collections.
package tenant

import (
	"context"
	"fmt"
	"sort"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
)

// Listing is the tenants of one collection plus per-status counts.
type Listing struct {
	Collection string                 `json:"collection"`
	Tenants    []domtenant.Tenant     `json:"tenants"`
	States     []domtenant.StateCount `json:"states"`
}

// Service handles tenant operations.
type Service struct {
	store Store
}

// New creates a tenant service.
func New(store Store) *Service {
	return &Service{store: store}
}

// List returns the tenants of collection ordered by name.
func (s *Service) List(ctx context.Context, collection string) (Listing, error) {
	tenants, err := s.store.ListTenants(ctx, collection)
	if err != nil {
		return Listing{}, fmt.Errorf("list tenants: %w", err)
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].Name < tenants[j].Name })
	return Listing{
		Collection: collection,
		Tenants:    tenants,
		States:     domtenant.AggregateStates(tenants),
	}, nil
}

// MultiTenantCollections returns collections with multi-tenancy enabled.
func (s *Service) MultiTenantCollections(ctx context.Context) ([]domtenant.Collection, error) {
	cols, err := s.store.MultiTenantCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list multi-tenancy collections: %w", err)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Name < cols[j].Name })
	return cols, nil
}

// Delete removes the named tenants.
func (s *Service) Delete(ctx context.Context, collection string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: at least one tenant name is required", domain.ErrValidation)
	}
	if err := s.store.DeleteTenants(ctx, collection, names); err != nil {
		return fmt.Errorf("delete tenants: %w", err)
	}
	return nil
}
