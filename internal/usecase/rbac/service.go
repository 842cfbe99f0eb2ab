// Package rbac reports database users, roles and permissions.
package rbac

import (
	"context"
	"fmt"
	"sort"

	domrbac "github.com/raywlfun/WeaviateDBCluster/internal/domain/rbac"
)

// Service builds the access-control views.
type Service struct {
	store Store
}

// New creates an rbac service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Users returns database users ordered by id.
func (s *Service) Users(ctx context.Context) ([]domrbac.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Roles returns one summary per role.
func (s *Service) Roles(ctx context.Context) ([]domrbac.RoleSummary, error) {
	roles, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return domrbac.Summarize(roles), nil
}

// Permissions returns the grouped permission rows of every role.
func (s *Service) Permissions(ctx context.Context) ([]domrbac.PermissionRow, error) {
	roles, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return domrbac.PermissionRows(roles), nil
}

// Assignments joins users with their roles and the areas those roles cover.
func (s *Service) Assignments(ctx context.Context) ([]domrbac.Assignment, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	roles, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return domrbac.Assignments(users, roles), nil
}
