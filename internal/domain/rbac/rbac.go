// Package rbac models database users, roles and the permissions roles grant.
package rbac

import (
	"sort"
	"strings"
)

// Area groups permissions by the kind of resource they govern.
type Area string

// Permission areas, in display order.
const (
	AreaRoles       Area = "Role Management"
	AreaUsers       Area = "User Management"
	AreaCollections Area = "Collections"
	AreaTenants     Area = "Tenants"
	AreaData        Area = "Data Objects"
	AreaBackups     Area = "Backups"
	AreaCluster     Area = "Cluster"
	AreaNodes       Area = "Nodes"
)

var areaOrder = []Area{AreaRoles, AreaUsers, AreaCollections, AreaTenants, AreaData, AreaBackups, AreaCluster, AreaNodes}

// Permission kinds as named in the cluster's role documents.
const (
	KindRoles       = "roles"
	KindUsers       = "users"
	KindCollections = "collections"
	KindTenants     = "tenants"
	KindData        = "data"
	KindBackups     = "backups"
	KindCluster     = "cluster"
	KindNodes       = "nodes"
)

// User is a database user.
type User struct {
	ID     string   `json:"user_id"`
	Type   string   `json:"user_type"`
	Active bool     `json:"active"`
	Roles  []string `json:"roles"`
}

// Permission is one action a role may perform on a resource.
type Permission struct {
	Area     Area   `json:"area"`
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Scope    string `json:"scope,omitempty"`
}

// Role is a named set of permissions.
type Role struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// NewPermission interprets one permission of kind with its resource fields.
// Unknown kinds keep their own name as area and list their fields verbatim.
func NewPermission(kind, action string, fields map[string]string) Permission {
	p := Permission{Action: action}
	switch kind {
	case KindRoles:
		p.Area, p.Resource, p.Scope = AreaRoles, fields["role"], fields["scope"]
	case KindUsers:
		p.Area, p.Resource = AreaUsers, fields["users"]
	case KindCollections:
		p.Area, p.Resource = AreaCollections, fields["collection"]
	case KindTenants:
		p.Area, p.Resource = AreaTenants, collectionTenant(fields)
	case KindData:
		p.Area, p.Resource = AreaData, collectionTenant(fields)
	case KindBackups:
		p.Area, p.Resource = AreaBackups, fields["collection"]
	case KindCluster:
		p.Area, p.Resource = AreaCluster, "N/A"
	case KindNodes:
		p.Area, p.Scope = AreaNodes, fields["verbosity"]
		p.Resource = "All"
		if p.Scope == "verbose" {
			p.Resource = fields["collection"]
		}
	default:
		p.Area, p.Resource = Area(kind), joinFields(fields)
	}
	return p
}

func collectionTenant(fields map[string]string) string {
	return "Collection: " + fields["collection"] + ", Tenant: " + fields["tenant"]
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, ", ")
}

// Areas lists the areas the role's permissions touch: the known areas in
// display order, then any others by name.
func (r Role) Areas() []Area {
	seen := make(map[Area]bool)
	for _, p := range r.Permissions {
		seen[p.Area] = true
	}
	out := make([]Area, 0, len(seen))
	for _, a := range areaOrder {
		if seen[a] {
			out = append(out, a)
			delete(seen, a)
		}
	}
	var rest []Area
	for a := range seen {
		rest = append(rest, a)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

// RoleSummary is one row of the role overview.
type RoleSummary struct {
	Name            string `json:"role_name"`
	PermissionCount int    `json:"permission_count"`
	Areas           []Area `json:"permission_types"`
}

// Summarize builds the role overview, ordered by role name.
func Summarize(roles []Role) []RoleSummary {
	out := make([]RoleSummary, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleSummary{Name: r.Name, PermissionCount: len(r.Permissions), Areas: r.Areas()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PermissionRow is one resource of one role with every action granted on it.
type PermissionRow struct {
	Role     string   `json:"role_name"`
	Area     Area     `json:"permission_type"`
	Resource string   `json:"resource_filter"`
	Actions  []string `json:"actions"`
	Scope    string   `json:"scope,omitempty"`
}

// PermissionRows groups each role's permissions by area, resource and scope.
// Rows follow role name, then area display order, then resource.
func PermissionRows(roles []Role) []PermissionRow {
	type key struct {
		role     string
		area     Area
		resource string
		scope    string
	}
	actions := make(map[key][]string)
	var keys []key
	for _, r := range roles {
		for _, p := range r.Permissions {
			k := key{r.Name, p.Area, p.Resource, p.Scope}
			if _, ok := actions[k]; !ok {
				keys = append(keys, k)
			}
			actions[k] = appendUnique(actions[k], p.Action)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.role != b.role {
			return a.role < b.role
		}
		if ra, rb := areaRank(a.area), areaRank(b.area); ra != rb {
			return ra < rb
		}
		if a.area != b.area {
			return a.area < b.area
		}
		if a.resource != b.resource {
			return a.resource < b.resource
		}
		return a.scope < b.scope
	})
	out := make([]PermissionRow, 0, len(keys))
	for _, k := range keys {
		acts := actions[k]
		sort.Strings(acts)
		out = append(out, PermissionRow{Role: k.role, Area: k.area, Resource: k.resource, Actions: acts, Scope: k.scope})
	}
	return out
}

func areaRank(a Area) int {
	for i, known := range areaOrder {
		if a == known {
			return i
		}
	}
	return len(areaOrder)
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

// Markers used by the user-role view.
const (
	NoRole        = "None"
	NoPermissions = "No permissions"
	RoleNotFound  = "Role not found"
)

// Assignment is one user paired with one of their roles.
type Assignment struct {
	UserID          string `json:"user_id"`
	UserType        string `json:"user_type"`
	Active          bool   `json:"active"`
	Role            string `json:"role_name"`
	PermissionAreas string `json:"permission_areas"`
}

// Assignments pairs every user with each assigned role and summarizes the
// areas that role covers. A user without roles yields a single NoRole row.
func Assignments(users []User, roles []Role) []Assignment {
	byName := make(map[string]Role, len(roles))
	for _, r := range roles {
		byName[r.Name] = r
	}
	sorted := append([]User(nil), users...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var out []Assignment
	for _, u := range sorted {
		base := Assignment{UserID: u.ID, UserType: u.Type, Active: u.Active}
		if len(u.Roles) == 0 {
			base.Role, base.PermissionAreas = NoRole, NoPermissions
			out = append(out, base)
			continue
		}
		for _, name := range u.Roles {
			a := base
			a.Role = name
			role, ok := byName[name]
			switch {
			case !ok:
				a.PermissionAreas = RoleNotFound
			case len(role.Permissions) == 0:
				a.PermissionAreas = NoPermissions
			default:
				a.PermissionAreas = joinAreas(role.Areas())
			}
			out = append(out, a)
		}
	}
	return out
}

func joinAreas(areas []Area) string {
	parts := make([]string, len(areas))
	for i, a := range areas {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}
