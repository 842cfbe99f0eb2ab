package weaviate

import (
	"context"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	domrbac "github.com/raywlfun/WeaviateDBCluster/internal/domain/rbac"
)

// ListUsers returns the database users with their assigned roles.
func (c *Client) ListUsers(ctx context.Context) ([]domrbac.User, error) {
	body, err := c.call(ctx, request{op: "list_users", method: http.MethodGet, path: "/v1/users/db"}, nil)
	if err != nil {
		return nil, err
	}
	out := []domrbac.User{}
	gjson.ParseBytes(body).ForEach(func(_, u gjson.Result) bool {
		out = append(out, domrbac.User{
			ID:     u.Get("userId").String(),
			Type:   u.Get("dbUserType").String(),
			Active: u.Get("active").Bool(),
			Roles:  stringList(u.Get("roles")),
		})
		return true
	})
	return out, nil
}

// ListRoles returns every role with its permissions.
func (c *Client) ListRoles(ctx context.Context) ([]domrbac.Role, error) {
	body, err := c.call(ctx, request{op: "list_roles", method: http.MethodGet, path: "/v1/authz/roles"}, nil)
	if err != nil {
		return nil, err
	}
	out := []domrbac.Role{}
	gjson.ParseBytes(body).ForEach(func(_, r gjson.Result) bool {
		role := domrbac.Role{Name: r.Get("name").String(), Permissions: []domrbac.Permission{}}
		r.Get("permissions").ForEach(func(_, p gjson.Result) bool {
			role.Permissions = append(role.Permissions, parsePermission(p))
			return true
		})
		out = append(out, role)
		return true
	})
	return out, nil
}

// parsePermission reads one permission. The resource filter is the one
// object-valued member; permissions without one take their kind from the
// action suffix, as in read_cluster.
func parsePermission(p gjson.Result) domrbac.Permission {
	action := p.Get("action").String()
	kind := ""
	fields := map[string]string{}
	p.ForEach(func(k, v gjson.Result) bool {
		if k.String() == "action" || !v.IsObject() {
			return true
		}
		kind = k.String()
		v.ForEach(func(fk, fv gjson.Result) bool {
			if fv.IsArray() {
				fields[fk.String()] = strings.Join(stringList(fv), ", ")
			} else {
				fields[fk.String()] = fv.String()
			}
			return true
		})
		return false
	})
	if kind == "" {
		if i := strings.LastIndexByte(action, '_'); i >= 0 {
			kind = action[i+1:]
		}
	}
	return domrbac.NewPermission(kind, action, fields)
}
