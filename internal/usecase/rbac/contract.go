package rbac

import (
	"context"

	domrbac "github.com/raywlfun/WeaviateDBCluster/internal/domain/rbac"
)

// Store reads database users and roles.
type Store interface {
	ListUsers(ctx context.Context) ([]domrbac.User, error)
	ListRoles(ctx context.Context) ([]domrbac.Role, error)
}
