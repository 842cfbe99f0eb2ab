package chi

import (
	"net/http"

	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
	domrbac "github.com/raywlfun/WeaviateDBCluster/internal/domain/rbac"
)

type nodesResponse struct {
	Nodes []domcluster.Node `json:"nodes"`
}

// ClusterNodes handles GET /cluster/nodes.
func (s *Server) ClusterNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.cluster.Nodes(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nodesResponse{Nodes: nodes})
}

type shardsResponse struct {
	Shards []domcluster.Shard `json:"shards"`
}

// ClusterShards handles GET /cluster/shards.
func (s *Server) ClusterShards(w http.ResponseWriter, r *http.Request) {
	shards, err := s.cluster.Shards(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shardsResponse{Shards: shards})
}

// ShardConsistency handles GET /cluster/consistency.
func (s *Server) ShardConsistency(w http.ResponseWriter, r *http.Request) {
	c, err := s.cluster.Consistency(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ClusterMeta handles GET /cluster/meta.
func (s *Server) ClusterMeta(w http.ResponseWriter, r *http.Request) {
	m, err := s.cluster.Meta(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type propertiesResponse struct {
	Collections []domcluster.CollectionProperties `json:"collections"`
}

// CollectionProperties handles GET /cluster/properties.
func (s *Server) CollectionProperties(w http.ResponseWriter, r *http.Request) {
	cols, err := s.cluster.Properties(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, propertiesResponse{Collections: cols})
}

type usersResponse struct {
	Users []domrbac.User `json:"users"`
}

// ListUsers handles GET /rbac/users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.rbac.Users(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usersResponse{Users: users})
}

type rolesResponse struct {
	Roles []domrbac.RoleSummary `json:"roles"`
}

// ListRoles handles GET /rbac/roles.
func (s *Server) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.rbac.Roles(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rolesResponse{Roles: roles})
}

type permissionsResponse struct {
	Permissions []domrbac.PermissionRow `json:"permissions"`
}

// ListPermissions handles GET /rbac/permissions.
func (s *Server) ListPermissions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.rbac.Permissions(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, permissionsResponse{Permissions: rows})
}

type assignmentsResponse struct {
	Assignments []domrbac.Assignment `json:"assignments"`
}

// ListAssignments handles GET /rbac/assignments.
func (s *Server) ListAssignments(w http.ResponseWriter, r *http.Request) {
	rows, err := s.rbac.Assignments(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignmentsResponse{Assignments: rows})
}
