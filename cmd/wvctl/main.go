// Command wvctl prints Weaviate collection settings, objects and tenants as
// tables for operators.
//
// Usage:
//
//	wvctl [-endpoint url] [-api-key key] <command> [args] [flags]
//
// Commands:
//
//	collections                          list collections
//	config <collection>                  show collection configuration
//	object <collection> <uuid> [-tenant] show an object's decoded properties
//	read <collection> [-page -per-page -tenant]
//	                                     show one page of objects
//	search <collection> <query> [-hybrid -alpha -limit -tenant]
//	                                     run a keyword or hybrid search
//	tenants <collection>                 list tenants and their activity states
//	nodes                                list nodes with shard totals
//	shards                               list shards with replica consistency
//	users                                list database users and their roles
//	permissions                          list role permissions
//	version                              show client and server versions
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
	"github.com/raywlfun/WeaviateDBCluster/internal/metrics"
	"github.com/raywlfun/WeaviateDBCluster/internal/transport/weaviate"
	browseuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/browse"
	clusteruc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/cluster"
	configuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/colconfig"
	objectuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/object"
	rbacuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/rbac"
	searchuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/search"
	tenantuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/tenant"
	"github.com/raywlfun/WeaviateDBCluster/internal/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	metrics.RegisterWeaviateMetrics()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("wvctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	endpoint := global.String("endpoint", envOr("WEAVIATE_ENDPOINT", "http://localhost:8080"), "Weaviate REST endpoint")
	apiKey := global.String("api-key", os.Getenv("WEAVIATE_API_KEY"), "Weaviate API key")
	timeout := global.Duration("timeout", 20*time.Second, "request timeout")
	if err := global.Parse(args); err != nil {
		return exitUsage
	}
	if global.NArg() == 0 {
		fmt.Fprintln(stderr, "wvctl: missing command (collections, config, object, read, search, tenants, nodes, shards, users, permissions, version)")
		return exitUsage
	}

	client, err := weaviate.NewClient(&weaviate.Config{
		Endpoint: *endpoint,
		APIKey:   *apiKey,
		Timeout:  *timeout,
		Logger:   zap.NewNop(),
	})
	if err != nil {
		fmt.Fprintf(stderr, "wvctl: %v\n", err)
		return exitUsage
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "collections":
		err = runCollections(ctx, client, stdout)
	case "config":
		err = runConfig(ctx, client, rest, stdout)
	case "object":
		err = runObject(ctx, client, rest, stdout, stderr)
	case "read":
		err = runRead(ctx, client, rest, stdout, stderr)
	case "search":
		err = runSearch(ctx, client, rest, stdout, stderr)
	case "tenants":
		err = runTenants(ctx, client, rest, stdout)
	case "nodes":
		err = runNodes(ctx, client, stdout)
	case "shards":
		err = runShards(ctx, client, stdout)
	case "users":
		err = runUsers(ctx, client, stdout)
	case "permissions":
		err = runPermissions(ctx, client, stdout)
	case "version":
		err = runVersion(ctx, client, stdout)
	default:
		fmt.Fprintf(stderr, "wvctl: unknown command %q\n", cmd)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "wvctl %s: %v\n", cmd, err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "wvctl %s: %s\n", cmd, describe(err))
		return exitError
	}
}

// describe prefers the cluster's own message for remote failures.
func describe(err error) string {
	var re *domain.RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}

func runCollections(ctx context.Context, client *weaviate.Client, out io.Writer) error {
	names, err := configuc.New(client, client).List(ctx)
	if err != nil {
		return err
	}
	renderCollections(out, names)
	return nil
}

func runConfig(ctx context.Context, client *weaviate.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: wvctl config <collection>", errUsage)
	}
	view, err := configuc.New(client, client).Get(ctx, args[0])
	if err != nil {
		return err
	}
	renderConfig(out, view.Rows)
	return nil
}

func runObject(ctx context.Context, client *weaviate.Client, args []string, out, stderr io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: wvctl object <collection> <uuid> [-tenant name]", errUsage)
	}
	fs := flag.NewFlagSet("object", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tenant := fs.String("tenant", "", "tenant of a multi-tenancy collection")
	if err := fs.Parse(args[2:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	form, err := objectuc.New(client, client).Load(ctx, domsess.New(""), args[0], args[1], *tenant)
	if err != nil {
		return err
	}
	renderObject(out, form)
	return nil
}

func runTenants(ctx context.Context, client *weaviate.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: wvctl tenants <collection>", errUsage)
	}
	listing, err := tenantuc.New(client).List(ctx, args[0])
	if err != nil {
		return err
	}
	renderTenants(out, listing)
	return nil
}

func runRead(ctx context.Context, client *weaviate.Client, args []string, out, stderr io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: wvctl read <collection> [-page n] [-per-page n] [-tenant name]", errUsage)
	}
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	fs.SetOutput(stderr)
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", domobj.DefaultPageSize, "objects per page")
	tenant := fs.String("tenant", "", "tenant of a multi-tenancy collection")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	req, err := domobj.NewPageRequest(*page, *perPage)
	if err != nil {
		return err
	}
	p, err := browseuc.New(client, client).Page(ctx, args[0], *tenant, req)
	if err != nil {
		return err
	}
	renderPage(out, p)
	return nil
}

func runSearch(ctx context.Context, client *weaviate.Client, args []string, out, stderr io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: wvctl search <collection> <query> [-hybrid] [-alpha f] [-limit n] [-tenant name]", errUsage)
	}
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(stderr)
	hybrid := fs.Bool("hybrid", false, "fuse BM25 with vector similarity")
	alpha := fs.Float64("alpha", domsearch.DefaultAlpha, "hybrid weight of the vector score")
	limit := fs.Int("limit", domsearch.DefaultLimit, "maximum number of results")
	tenant := fs.String("tenant", "", "tenant of a multi-tenancy collection")
	if err := fs.Parse(args[2:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	mode := domsearch.Keyword
	if *hybrid {
		mode = domsearch.Hybrid
	}
	req, err := domsearch.NewRequest(args[0], *tenant, args[1], mode, alpha, *limit)
	if err != nil {
		return err
	}
	res, err := searchuc.New(client).Search(ctx, req)
	if err != nil {
		return err
	}
	renderHits(out, res)
	return nil
}

func runNodes(ctx context.Context, client *weaviate.Client, out io.Writer) error {
	nodes, err := clusteruc.New(client).Nodes(ctx)
	if err != nil {
		return err
	}
	renderNodes(out, nodes)
	return nil
}

func runShards(ctx context.Context, client *weaviate.Client, out io.Writer) error {
	svc := clusteruc.New(client)
	shards, err := svc.Shards(ctx)
	if err != nil {
		return err
	}
	c, err := svc.Consistency(ctx)
	if err != nil {
		return err
	}
	renderShards(out, shards, c)
	return nil
}

func runUsers(ctx context.Context, client *weaviate.Client, out io.Writer) error {
	users, err := rbacuc.New(client).Users(ctx)
	if err != nil {
		return err
	}
	renderUsers(out, users)
	return nil
}

func runPermissions(ctx context.Context, client *weaviate.Client, out io.Writer) error {
	rows, err := rbacuc.New(client).Permissions(ctx)
	if err != nil {
		return err
	}
	renderPermissions(out, rows)
	return nil
}

func runVersion(ctx context.Context, client *weaviate.Client, out io.Writer) error {
	fmt.Fprintf(out, "wvctl %s\n", version.Get())
	server, err := client.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "weaviate %s\n", server)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
