package wvadmin

import (
	"context"
	"fmt"
	"time"

	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
)

// ConfigService reads and edits collection configuration.
type ConfigService struct {
	svc configUseCase
	obs *observer
}

// List returns collection names in alphabetical order.
func (s *ConfigService) List(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.list", start, err) }()

	names, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// Delete drops a collection and all its objects.
func (s *ConfigService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.delete", start, err) }()

	if err = s.svc.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

// Get returns the current configuration of a collection.
func (s *ConfigService) Get(ctx context.Context, name string) (_ ConfigView, err error) {
	start := time.Now()
	defer func() { s.obs.observe("config.get", start, err) }()

	v, err := s.svc.Get(ctx, name)
	if err != nil {
		return ConfigView{}, fmt.Errorf("get config: %w", err)
	}
	return fromInternalView(name, v), nil
}

// Form returns a complete edit set prefilled from the current configuration.
// Sending it back unchanged with prune applies nothing.
func (s *ConfigService) Form(ctx context.Context, name string) (_ Edits, err error) {
	start := time.Now()
	defer func() { s.obs.observe("config.form", start, err) }()

	form, err := s.svc.Form(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("config form: %w", err)
	}
	return Edits(form), nil
}

// Update applies edits to a collection. Only edited fields are sent and
// untouched subsystems keep their values. With prune, edits equal to the
// current values are dropped first. An invalid value fails the whole call
// and nothing is applied.
func (s *ConfigService) Update(ctx context.Context, name string, edits Edits, prune bool) (_ ConfigUpdate, err error) {
	start := time.Now()
	defer func() { s.obs.observe("config.update", start, err) }()

	u, err := s.svc.Update(ctx, name, domcfg.EditSet(edits), prune)
	if err != nil {
		return ConfigUpdate{}, fmt.Errorf("update config: %w", err)
	}
	return fromInternalUpdate(u), nil
}
