// Package colconfig reads, edits and applies collection configuration.
package colconfig

import (
	"context"
	"fmt"
	"sort"

	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
	"github.com/raywlfun/WeaviateDBCluster/internal/metrics"
)

// View is a snapshot together with its display rows.
type View struct {
	Snapshot domcfg.Snapshot `json:"-"`
	Rows     []domcfg.Row    `json:"rows"`
}

// Service handles collection configuration.
type Service struct {
	configs     ConfigStore
	collections CollectionStore
}

// New creates a collection config service.
func New(configs ConfigStore, collections CollectionStore) *Service {
	return &Service{configs: configs, collections: collections}
}

// Get returns the current configuration of a collection.
func (s *Service) Get(ctx context.Context, name string) (View, error) {
	snap, err := s.configs.FetchConfig(ctx, name)
	if err != nil {
		return View{}, fmt.Errorf("fetch config: %w", err)
	}
	return View{Snapshot: snap, Rows: domcfg.Table(snap)}, nil
}

// Form returns the edit form prefilled from the current configuration.
func (s *Service) Form(ctx context.Context, name string) (domcfg.EditSet, error) {
	snap, err := s.configs.FetchConfig(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch config: %w", err)
	}
	return domcfg.FormDefaults(snap), nil
}

// Update reconciles edits against the live configuration and applies the
// result. With prune, edits equal to the current values are dropped first.
// An empty update is returned without calling the cluster. Validation
// failures abort before anything is applied.
func (s *Service) Update(ctx context.Context, name string, edits domcfg.EditSet, prune bool) (domcfg.Update, error) {
	snap, err := s.configs.FetchConfig(ctx, name)
	if err != nil {
		return domcfg.Update{}, fmt.Errorf("fetch config: %w", err)
	}
	if prune {
		edits = domcfg.Prune(snap, edits)
	}

	u, err := domcfg.Reconcile(snap, edits)
	if err != nil {
		metrics.ConfigReconcileTotal.WithLabelValues("rejected").Inc()
		return domcfg.Update{}, fmt.Errorf("reconcile config: %w", err)
	}
	if u.IsEmpty() {
		metrics.ConfigReconcileTotal.WithLabelValues("noop").Inc()
		return u, nil
	}

	if err := s.configs.ApplyConfig(ctx, name, u); err != nil {
		return domcfg.Update{}, fmt.Errorf("apply config: %w", err)
	}
	metrics.ConfigReconcileTotal.WithLabelValues("applied").Inc()
	return u, nil
}

// List returns collection names in alphabetical order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.collections.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Delete drops a collection and all its objects.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.collections.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}
