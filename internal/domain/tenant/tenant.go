// Package tenant models tenants of multi-tenancy collections.
package tenant

import "sort"

// Activity statuses reported by the cluster.
const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusOffloaded  = "OFFLOADED"
	StatusOffloading = "OFFLOADING"
	StatusOnloading  = "ONLOADING"
)

// Tenant is one partition of a multi-tenancy collection.
type Tenant struct {
	Name           string `json:"name"`
	ActivityStatus string `json:"activity_status"`
}

// StateCount is the number of tenants in one activity status.
type StateCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// AggregateStates counts tenants per activity status, ordered by status name.
func AggregateStates(tenants []Tenant) []StateCount {
	counts := make(map[string]int)
	for _, t := range tenants {
		counts[t.ActivityStatus]++
	}
	out := make([]StateCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, StateCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

// Collection is a collection with multi-tenancy enabled.
type Collection struct {
	Name                 string `json:"collection_name"`
	AutoTenantCreation   bool   `json:"auto_tenant_creation"`
	AutoTenantActivation bool   `json:"auto_tenant_activation"`
}
