package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
	domrbac "github.com/raywlfun/WeaviateDBCluster/internal/domain/rbac"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
	clusteruc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/cluster"
	objectuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/object"
	tenantuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/tenant"
)

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	tw := tablewriter.NewWriter(out)
	tw.SetHeader(header)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	return tw
}

func renderCollections(out io.Writer, names []string) {
	tw := newTable(out, "Collection")
	for _, n := range names {
		tw.Append([]string{n})
	}
	tw.Render()
}

func renderConfig(out io.Writer, rows []domcfg.Row) {
	tw := newTable(out, "Setting", "Value")
	for _, r := range rows {
		tw.Append([]string{r.Label, r.Value})
	}
	tw.Render()
}

func renderObject(out io.Writer, form objectuc.EditForm) {
	fmt.Fprintf(out, "%s/%s", form.Collection, form.ID)
	if form.Tenant != "" {
		fmt.Fprintf(out, " (tenant %s)", form.Tenant)
	}
	fmt.Fprintln(out)

	tw := newTable(out, "Property", "Type", "Value")
	for _, f := range form.Fields {
		tw.Append([]string{f.Name, string(f.Type), fmt.Sprint(f.Value)})
	}
	tw.Render()
}

func renderTenants(out io.Writer, listing tenantuc.Listing) {
	tw := newTable(out, "Tenant", "Activity Status")
	for _, t := range listing.Tenants {
		tw.Append([]string{t.Name, t.ActivityStatus})
	}
	tw.Render()

	tw = newTable(out, "Status", "Count")
	for _, s := range listing.States {
		tw.Append([]string{s.Status, strconv.Itoa(s.Count)})
	}
	tw.Render()
}

// inline renders properties as sorted key=value pairs.
func inline(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, props[k])
	}
	return strings.Join(parts, " ")
}

func renderPage(out io.Writer, p domobj.Page) {
	fmt.Fprintf(out, "page %d of %d (%d objects)\n", p.Page, p.TotalPages, p.Total)
	tw := newTable(out, "ID", "Properties")
	for i := range p.Objects {
		tw.Append([]string{p.Objects[i].ID(), inline(p.Objects[i].Properties())})
	}
	tw.Render()
}

func renderHits(out io.Writer, res domsearch.Result) {
	fmt.Fprintf(out, "%s search, %d hits in %s\n", res.Mode, len(res.Hits), res.Took)
	tw := newTable(out, "ID", "Score", "Properties")
	for _, h := range res.Hits {
		tw.Append([]string{h.ID, strconv.FormatFloat(h.Score, 'f', 4, 64), inline(h.Properties)})
	}
	tw.Render()
}

func renderNodes(out io.Writer, nodes []domcluster.Node) {
	tw := newTable(out, "Node", "Status", "Version", "Shards", "Objects")
	for _, n := range nodes {
		tw.Append([]string{n.Name, n.Status, n.Version,
			strconv.FormatInt(n.ShardCount, 10), strconv.FormatInt(n.ObjectCount, 10)})
	}
	tw.Render()
}

func renderShards(out io.Writer, shards []domcluster.Shard, c clusteruc.Consistency) {
	tw := newTable(out, "Collection", "Shard", "Node", "Objects", "Indexing", "Queue")
	for _, s := range shards {
		tw.Append([]string{s.Collection, s.Name, s.Node, strconv.FormatInt(s.ObjectCount, 10),
			s.IndexingStatus, strconv.FormatInt(s.QueueLength, 10)})
	}
	tw.Render()

	if c.Inconsistent == 0 {
		fmt.Fprintln(out, "all shard replicas consistent")
		return
	}
	fmt.Fprintf(out, "%d inconsistent shards:\n", c.Inconsistent)
	for _, s := range c.Shards {
		if s.Consistent {
			continue
		}
		counts := make([]string, len(s.Replicas))
		for i, r := range s.Replicas {
			counts[i] = fmt.Sprintf("%s=%d", r.Node, r.ObjectCount)
		}
		fmt.Fprintf(out, "  %s/%s %s\n", s.Collection, s.Shard, strings.Join(counts, " "))
	}
}

func renderUsers(out io.Writer, users []domrbac.User) {
	tw := newTable(out, "User", "Type", "Active", "Roles")
	for _, u := range users {
		tw.Append([]string{u.ID, u.Type, strconv.FormatBool(u.Active), strings.Join(u.Roles, ", ")})
	}
	tw.Render()
}

func renderPermissions(out io.Writer, rows []domrbac.PermissionRow) {
	tw := newTable(out, "Role", "Area", "Resource", "Actions")
	for _, r := range rows {
		tw.Append([]string{r.Role, string(r.Area), r.Resource, strings.Join(r.Actions, ", ")})
	}
	tw.Render()
}
