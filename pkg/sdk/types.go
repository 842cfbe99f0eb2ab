package wvadmin

import (
	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
	colconfiguc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/colconfig"
	objectuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/object"
	tenantuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/tenant"
)

// Edits maps config field names (see FieldNames) to new values. Enum fields
// take the symbolic name or the wire value; stopword lists take a
// comma-separated string or a list.
type Edits map[string]any

// FieldNames lists every editable config field in form order.
func FieldNames() []string {
	return domcfg.Fields()
}

// FieldOptions lists the accepted symbolic names of enum config fields.
func FieldOptions() map[string][]string {
	return domcfg.Options()
}

// ConfigRow is one label/value pair of a collection's configuration.
type ConfigRow struct {
	Label string
	Value string
}

// ConfigView is a collection's current configuration flattened for display.
type ConfigView struct {
	Collection      string
	VectorIndexType string
	Rows            []ConfigRow
}

// ConfigUpdate reports what an Update changed.
type ConfigUpdate struct {
	// Applied is false when nothing differed and the cluster was not called.
	Applied bool
	// Groups names the touched subsystems in a fixed order.
	Groups             []string
	DescriptionChanged bool
}

// Field is one editable object property.
type Field struct {
	Name  string
	Type  string // Weaviate data type, e.g. "int", "text[]"
	Value any
}

// ObjectForm is an object prepared for editing. Fields are ordered by name.
type ObjectForm struct {
	ID         string
	Collection string
	Tenant     string
	Fields     []Field
	Raw        map[string]any
}

// Tenant is one partition of a multi-tenancy collection.
type Tenant struct {
	Name   string
	Status string
}

// TenantListing is the tenants of one collection with per-status counts.
type TenantListing struct {
	Collection string
	Tenants    []Tenant
	States     map[string]int
}

// MultiTenantCollection is a collection with multi-tenancy enabled.
type MultiTenantCollection struct {
	Name                 string
	AutoTenantCreation   bool
	AutoTenantActivation bool
}

func fromInternalView(name string, v colconfiguc.View) ConfigView {
	rows := make([]ConfigRow, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = ConfigRow{Label: r.Label, Value: r.Value}
	}
	return ConfigView{Collection: name, VectorIndexType: v.Snapshot.VectorIndexType, Rows: rows}
}

func fromInternalUpdate(u domcfg.Update) ConfigUpdate {
	groups := u.Groups()
	if groups == nil {
		groups = []string{}
	}
	return ConfigUpdate{
		Applied:            !u.IsEmpty(),
		Groups:             groups,
		DescriptionChanged: u.Description != nil,
	}
}

func fromInternalForm(f objectuc.EditForm) ObjectForm {
	fields := make([]Field, len(f.Fields))
	for i, fl := range f.Fields {
		fields[i] = Field{Name: fl.Name, Type: string(fl.Type), Value: fl.Value}
	}
	return ObjectForm{
		ID:         f.ID,
		Collection: f.Collection,
		Tenant:     f.Tenant,
		Fields:     fields,
		Raw:        f.Raw,
	}
}

func fromInternalListing(l tenantuc.Listing) TenantListing {
	tenants := make([]Tenant, len(l.Tenants))
	for i, t := range l.Tenants {
		tenants[i] = Tenant{Name: t.Name, Status: t.ActivityStatus}
	}
	states := make(map[string]int, len(l.States))
	for _, s := range l.States {
		states[s.Status] = s.Count
	}
	return TenantListing{Collection: l.Collection, Tenants: tenants, States: states}
}

func fromInternalCollections(cols []domtenant.Collection) []MultiTenantCollection {
	out := make([]MultiTenantCollection, len(cols))
	for i, c := range cols {
		out[i] = MultiTenantCollection{
			Name:                 c.Name,
			AutoTenantCreation:   c.AutoTenantCreation,
			AutoTenantActivation: c.AutoTenantActivation,
		}
	}
	return out
}
