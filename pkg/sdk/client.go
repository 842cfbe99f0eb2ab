package wvadmin

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbValkey "github.com/raywlfun/WeaviateDBCluster/internal/db/valkey"
	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
	sessionrepo "github.com/raywlfun/WeaviateDBCluster/internal/repository/session"
	"github.com/raywlfun/WeaviateDBCluster/internal/transport/weaviate"
	clusteruc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/cluster"
	colconfiguc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/colconfig"
	healthuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/health"
	objectuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/object"
	searchuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/search"
	sessionuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/session"
	tenantuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/tenant"
)

const (
	defaultTimeout          = 20 * time.Second
	defaultSessionTTL       = time.Hour
	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces, replaced by mocks in tests.
type configUseCase interface {
	Get(ctx context.Context, name string) (colconfiguc.View, error)
	Form(ctx context.Context, name string) (domcfg.EditSet, error)
	Update(ctx context.Context, name string, edits domcfg.EditSet, prune bool) (domcfg.Update, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

type objectUseCase interface {
	Load(ctx context.Context, sess *domsess.Session, collection, id, tenant string) (objectuc.EditForm, error)
	Save(ctx context.Context, sess *domsess.Session, collection, id, tenant string, edited map[string]any) (objectuc.EditForm, error)
}

type sessionUseCase interface {
	Open(ctx context.Context, id string) (*domsess.Session, error)
	Save(ctx context.Context, sess *domsess.Session) error
	Close(ctx context.Context, id string) error
}

type tenantUseCase interface {
	List(ctx context.Context, collection string) (tenantuc.Listing, error)
	MultiTenantCollections(ctx context.Context) ([]domtenant.Collection, error)
	Delete(ctx context.Context, collection string, names []string) error
}

type searchUseCase interface {
	Search(ctx context.Context, req domsearch.Request) (domsearch.Result, error)
}

type clusterUseCase interface {
	Nodes(ctx context.Context) ([]domcluster.Node, error)
	Consistency(ctx context.Context) (clusteruc.Consistency, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// sessionStore is what the session usecase and the health check need from a repo.
type sessionStore interface {
	sessionuc.Store
	healthuc.SessionPinger
}

// Client is the wvadmin SDK entry point.
type Client struct {
	closeFn    func()
	configSvc  configUseCase
	objectSvc  objectUseCase
	sessionSvc sessionUseCase
	tenantSvc  tenantUseCase
	searchSvc  searchUseCase
	clusterSvc clusterUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client. The cluster is not contacted; call Ping or Health to
// check it. With WithValkeySessions the provided context bounds the wait for
// Valkey to become ready.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout, sessionTTL: defaultSessionTTL}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.endpoint == "" {
		return nil, errors.New("wvadmin: weaviate endpoint required (use WithEndpoint)")
	}

	wv, err := weaviate.NewClient(&weaviate.Config{
		Endpoint:   cfg.endpoint,
		APIKey:     cfg.apiKey,
		Timeout:    cfg.timeout,
		Headers:    cfg.headers,
		HTTPClient: cfg.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("wvadmin: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	sessions, closeFn, err := createSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		closeFn:    closeFn,
		configSvc:  colconfiguc.New(wv, wv),
		objectSvc:  objectuc.New(wv, wv),
		sessionSvc: sessionuc.New(sessions),
		tenantSvc:  tenantuc.New(wv),
		searchSvc:  searchuc.New(wv),
		clusterSvc: clusteruc.New(wv),
		healthSvc:  healthuc.New(wv, sessions),
		obs:        obs,
	}, nil
}

func createSessionStore(ctx context.Context, cfg *clientConfig) (sessionStore, func(), error) {
	if len(cfg.valkeyAddrs) == 0 {
		return sessionrepo.NewMemory(cfg.sessionTTL), func() {}, nil
	}
	store, err := dbValkey.NewStore(dbValkey.Config{
		Addrs:    cfg.valkeyAddrs,
		Password: cfg.valkeyPassword,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wvadmin: create valkey store: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("wvadmin: valkey not ready: %w", err)
	}
	return sessionrepo.New(store, cfg.sessionTTL), store.Close, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Ping reports whether the cluster is ready.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	report := c.healthSvc.Check(ctx)
	if report.Checks[healthuc.ComponentCluster] != healthuc.CheckOK {
		return errors.New("ping: cluster not ready")
	}
	return nil
}

// Configs returns the collection configuration service.
func (c *Client) Configs() *ConfigService {
	return &ConfigService{svc: c.configSvc, obs: c.obs}
}

// Tenants returns the tenant management service.
func (c *Client) Tenants() *TenantService {
	return &TenantService{svc: c.tenantSvc, obs: c.obs}
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// Cluster returns the node and shard inspection service.
func (c *Client) Cluster() *ClusterService {
	return &ClusterService{svc: c.clusterSvc, obs: c.obs}
}

// Objects returns an object edit service bound to the session sessionID.
// An empty or unknown id starts a new session; read it back with SessionID.
func (c *Client) Objects(sessionID string) *ObjectService {
	return &ObjectService{
		sessionID: sessionID,
		objects:   c.objectSvc,
		sessions:  c.sessionSvc,
		obs:       c.obs,
	}
}
