package wvadmin

import (
	"context"

	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
	clusteruc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/cluster"
	colconfiguc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/colconfig"
	healthuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/health"
	objectuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/object"
	tenantuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/tenant"
)

// --- configUseCase mock ---

type mockConfigUC struct {
	getFn    func(ctx context.Context, name string) (colconfiguc.View, error)
	formFn   func(ctx context.Context, name string) (domcfg.EditSet, error)
	updateFn func(ctx context.Context, name string, edits domcfg.EditSet, prune bool) (domcfg.Update, error)
	listFn   func(ctx context.Context) ([]string, error)
	deleteFn func(ctx context.Context, name string) error
}

func (m *mockConfigUC) Get(ctx context.Context, name string) (colconfiguc.View, error) {
	return m.getFn(ctx, name)
}

func (m *mockConfigUC) Form(ctx context.Context, name string) (domcfg.EditSet, error) {
	return m.formFn(ctx, name)
}

func (m *mockConfigUC) Update(ctx context.Context, name string, edits domcfg.EditSet, prune bool) (domcfg.Update, error) {
	return m.updateFn(ctx, name, edits, prune)
}

func (m *mockConfigUC) List(ctx context.Context) ([]string, error) {
	return m.listFn(ctx)
}

func (m *mockConfigUC) Delete(ctx context.Context, name string) error {
	return m.deleteFn(ctx, name)
}

// --- objectUseCase mock ---

type mockObjectUC struct {
	loadFn func(ctx context.Context, sess *domsess.Session, collection, id, tenant string) (objectuc.EditForm, error)
	saveFn func(ctx context.Context, sess *domsess.Session, collection, id, tenant string, edited map[string]any) (objectuc.EditForm, error)
}

func (m *mockObjectUC) Load(
	ctx context.Context, sess *domsess.Session, collection, id, tenant string,
) (objectuc.EditForm, error) {
	return m.loadFn(ctx, sess, collection, id, tenant)
}

func (m *mockObjectUC) Save(
	ctx context.Context, sess *domsess.Session, collection, id, tenant string, edited map[string]any,
) (objectuc.EditForm, error) {
	return m.saveFn(ctx, sess, collection, id, tenant, edited)
}

// --- sessionUseCase mock ---

type mockSessionUC struct {
	opened  []string
	saved   []string
	closed  []string
	saveErr error
}

func (m *mockSessionUC) Open(_ context.Context, id string) (*domsess.Session, error) {
	m.opened = append(m.opened, id)
	if id == "" {
		id = "11111111-1111-1111-1111-111111111111"
	}
	return domsess.New(id), nil
}

func (m *mockSessionUC) Save(_ context.Context, sess *domsess.Session) error {
	m.saved = append(m.saved, sess.ID)
	return m.saveErr
}

func (m *mockSessionUC) Close(_ context.Context, id string) error {
	m.closed = append(m.closed, id)
	return nil
}

// --- tenantUseCase mock ---

type mockTenantUC struct {
	listFn        func(ctx context.Context, collection string) (tenantuc.Listing, error)
	collectionsFn func(ctx context.Context) ([]domtenant.Collection, error)
	deleteFn      func(ctx context.Context, collection string, names []string) error
}

func (m *mockTenantUC) List(ctx context.Context, collection string) (tenantuc.Listing, error) {
	return m.listFn(ctx, collection)
}

func (m *mockTenantUC) MultiTenantCollections(ctx context.Context) ([]domtenant.Collection, error) {
	return m.collectionsFn(ctx)
}

func (m *mockTenantUC) Delete(ctx context.Context, collection string, names []string) error {
	return m.deleteFn(ctx, collection, names)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req domsearch.Request) (domsearch.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req domsearch.Request) (domsearch.Result, error) {
	return m.searchFn(ctx, req)
}

// --- clusterUseCase mock ---

type mockClusterUC struct {
	nodes       []domcluster.Node
	consistency clusteruc.Consistency
	err         error
}

func (m *mockClusterUC) Nodes(_ context.Context) ([]domcluster.Node, error) {
	return m.nodes, m.err
}

func (m *mockClusterUC) Consistency(_ context.Context) (clusteruc.Consistency, error) {
	return m.consistency, m.err
}
