package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
	doming "github.com/raywlfun/WeaviateDBCluster/internal/domain/ingest"
	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain/property"
	domrbac "github.com/raywlfun/WeaviateDBCluster/internal/domain/rbac"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
	sessionrepo "github.com/raywlfun/WeaviateDBCluster/internal/repository/session"
	browseuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/browse"
	clusteruc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/cluster"
	configuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/colconfig"
	healthuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/health"
	ingestuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/ingest"
	objectuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/object"
	rbacuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/rbac"
	searchuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/search"
	sessionuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/session"
	tenantuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/tenant"
)

// --- Mocks ---

const testObjectID = "6f1d2a3b-4c5d-4e6f-8a9b-0c1d2e3f4a5b"

type fakeCluster struct {
	err      error
	readyErr error

	snap    domcfg.Snapshot
	applied []domcfg.Update

	schema      []property.Schema
	schemaCalls int
	props       map[string]any
	patched     map[string]any

	tenants       []domtenant.Tenant
	deleted       []string
	mtCollections []domtenant.Collection
	names         []string

	hits      []domsearch.Hit
	searches  []domsearch.Request
	listed    []domobj.Object
	count     int64
	pageArgs  [2]int
	exists    bool
	created   []doming.CollectionSpec
	imported  []doming.Object
	nodes     []domcluster.Node
	users     []domrbac.User
	roles     []domrbac.Role
	apiHeader map[string]string
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{
		snap: domcfg.Snapshot{
			Name:            "Article",
			InvertedIndex:   &domcfg.InvertedIndex{BM25B: 0.75, BM25K1: 1.2, CleanupIntervalSeconds: 60, StopwordsPreset: domcfg.StopwordsEN},
			MultiTenancy:    &domcfg.MultiTenancy{Enabled: true},
			Replication:     &domcfg.Replication{Factor: 1, DeletionStrategy: domcfg.NoAutomatedResolution},
			VectorIndexType: "hnsw",
			VectorIndex: &domcfg.VectorIndex{
				DynamicEfFactor: 8, DynamicEfMin: 100, DynamicEfMax: 500,
				FilterStrategy: domcfg.FilterSweeping, FlatSearchCutoff: 40000, VectorCacheMaxObjects: 1000000,
				PQ: &domcfg.PQ{Centroids: 256, TrainingLimit: 100000,
					Encoder: &domcfg.PQEncoder{Type: domcfg.EncoderKMeans, Distribution: domcfg.DistributionLogNormal}},
			},
		},
		schema: []property.Schema{
			{Name: "title", DataType: []string{"text"}},
			{Name: "views", DataType: []string{"int"}},
		},
		props: map[string]any{"title": "hello", "views": json.Number("3")},
		tenants: []domtenant.Tenant{
			{Name: "b", ActivityStatus: domtenant.StatusActive},
			{Name: "a", ActivityStatus: domtenant.StatusInactive},
		},
		mtCollections: []domtenant.Collection{{Name: "Article", AutoTenantCreation: true}},
		names:         []string{"Article", "Author"},
	}
}

func (f *fakeCluster) FetchSchema(_ context.Context, _ string) ([]property.Schema, error) {
	f.schemaCalls++
	return f.schema, f.err
}

func (f *fakeCluster) FetchObject(_ context.Context, collection, id, tenant string) (domobj.Object, error) {
	if f.err != nil {
		return domobj.Object{}, f.err
	}
	return domobj.Reconstruct(id, collection, tenant, f.props, time.Time{}, time.Time{}), nil
}

func (f *fakeCluster) UpdateObjectProperties(_ context.Context, _, _, _ string, props map[string]any) error {
	f.patched = props
	return f.err
}

func (f *fakeCluster) FetchConfig(_ context.Context, _ string) (domcfg.Snapshot, error) {
	return f.snap, f.err
}

func (f *fakeCluster) ApplyConfig(_ context.Context, _ string, u domcfg.Update) error {
	f.applied = append(f.applied, u)
	return f.err
}

func (f *fakeCluster) ListCollections(_ context.Context) ([]string, error) {
	return f.names, f.err
}

func (f *fakeCluster) DeleteCollection(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeCluster) ListTenants(_ context.Context, _ string) ([]domtenant.Tenant, error) {
	return f.tenants, f.err
}

func (f *fakeCluster) DeleteTenants(_ context.Context, _ string, names []string) error {
	f.deleted = names
	return f.err
}

func (f *fakeCluster) MultiTenantCollections(_ context.Context) ([]domtenant.Collection, error) {
	return f.mtCollections, f.err
}

func (f *fakeCluster) Ready(_ context.Context) error { return f.readyErr }

func (f *fakeCluster) Version(_ context.Context) (string, error) { return "1.25.3", nil }

func (f *fakeCluster) Keyword(_ context.Context, req domsearch.Request) ([]domsearch.Hit, error) {
	f.searches = append(f.searches, req)
	return f.hits, f.err
}

func (f *fakeCluster) Hybrid(_ context.Context, req domsearch.Request) ([]domsearch.Hit, error) {
	f.searches = append(f.searches, req)
	return f.hits, f.err
}

func (f *fakeCluster) ListObjects(_ context.Context, _, _ string, limit, offset int) ([]domobj.Object, error) {
	f.pageArgs = [2]int{limit, offset}
	return f.listed, f.err
}

func (f *fakeCluster) CountObjects(_ context.Context, _, _ string) (int64, error) { return f.count, f.err }

func (f *fakeCluster) CollectionExists(_ context.Context, _ string) (bool, error) { return f.exists, f.err }

func (f *fakeCluster) CreateCollection(_ context.Context, spec doming.CollectionSpec) error {
	f.created = append(f.created, spec)
	return f.err
}

func (f *fakeCluster) CollectionInfo(_ context.Context, name string) (doming.Info, error) {
	return doming.Info{Name: name, Vectorizer: "none", ObjectCount: int64(len(f.imported)), Properties: f.schema}, f.err
}

func (f *fakeCluster) BatchObjects(_ context.Context, _ string, objs []doming.Object) ([]doming.Failure, error) {
	f.imported = append(f.imported, objs...)
	return nil, f.err
}

func (f *fakeCluster) Nodes(_ context.Context) ([]domcluster.Node, error) { return f.nodes, f.err }

func (f *fakeCluster) Meta(_ context.Context) (domcluster.Meta, error) {
	return domcluster.Meta{Version: "1.25.3", Modules: []string{"text2vec-openai"}}, f.err
}

func (f *fakeCluster) CollectionProperties(_ context.Context) ([]domcluster.CollectionProperties, error) {
	return []domcluster.CollectionProperties{{Collection: "Article", Vectorizer: "none", Properties: f.schema}}, f.err
}

func (f *fakeCluster) ListUsers(_ context.Context) ([]domrbac.User, error) { return f.users, f.err }

func (f *fakeCluster) ListRoles(_ context.Context) ([]domrbac.Role, error) { return f.roles, f.err }

func newTestRouter(fc *fakeCluster) http.Handler {
	sessions := sessionrepo.NewMemory(time.Hour)
	srv := NewServer(
		configuc.New(fc, fc),
		objectuc.New(fc, fc),
		tenantuc.New(fc),
		sessionuc.New(sessions),
		searchuc.New(fc),
		browseuc.New(fc, fc),
		ingestuc.New(fc, fc, fc.apiHeader, 1),
		rbacuc.New(fc),
		clusteruc.New(fc),
		healthuc.New(fc, sessions),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Mount(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

// --- Tests ---

func TestListCollections(t *testing.T) {
	rr := do(t, newTestRouter(newFakeCluster()), http.MethodGet, "/collections", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp collectionsResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if !reflect.DeepEqual(resp.Collections, []string{"Article", "Author"}) {
		t.Errorf("collections = %v", resp.Collections)
	}
}

func TestDeleteCollection(t *testing.T) {
	rr := do(t, newTestRouter(newFakeCluster()), http.MethodDelete, "/collections/Article", nil, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestGetConfig(t *testing.T) {
	rr := do(t, newTestRouter(newFakeCluster()), http.MethodGet, "/collections/Article/config", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp configResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Collection != "Article" || len(resp.Rows) == 0 || resp.Rows[0].Label != "Description" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGetConfig_NotFound(t *testing.T) {
	fc := newFakeCluster()
	fc.err = fmt.Errorf("fetch_config: %w", domain.ErrNotFound)

	rr := do(t, newTestRouter(fc), http.MethodGet, "/collections/Missing/config", nil, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != CodeCollectionNotFound || resp.Message != "not found" {
		t.Errorf("unexpected error: %+v", resp)
	}
}

func TestGetConfigForm(t *testing.T) {
	rr := do(t, newTestRouter(newFakeCluster()), http.MethodGet, "/collections/Article/config/form", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp configFormResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp.Fields) != len(domcfg.Fields()) {
		t.Fatalf("got %d fields", len(resp.Fields))
	}
	for _, f := range resp.Fields {
		if f.Name == domcfg.FieldDeletionStrategy {
			if f.Value != "NO_AUTOMATED_RESOLUTION" || len(f.Options) != 3 {
				t.Errorf("deletion strategy field = %+v", f)
			}
			return
		}
	}
	t.Error("deletion strategy field missing")
}

func TestPatchConfig_Applied(t *testing.T) {
	fc := newFakeCluster()
	rr := do(t, newTestRouter(fc), http.MethodPatch, "/collections/Article/config",
		map[string]any{domcfg.FieldBM25B: 0.8}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp configUpdateResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if !resp.Applied || !reflect.DeepEqual(resp.Groups, []string{domcfg.GroupInvertedIndex}) {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(fc.applied) != 1 || *fc.applied[0].InvertedIndex.BM25B != 0.8 {
		t.Errorf("applied = %+v", fc.applied)
	}
}

func TestPatchConfig_PruneUnchangedForm(t *testing.T) {
	fc := newFakeCluster()
	rr := do(t, newTestRouter(fc), http.MethodPatch, "/collections/Article/config?prune=true",
		domcfg.FormDefaults(fc.snap), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp configUpdateResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Applied || len(resp.Groups) != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(fc.applied) != 0 {
		t.Error("an unchanged form must not reach the cluster")
	}
}

func TestPatchConfig_InvalidEnum(t *testing.T) {
	fc := newFakeCluster()
	rr := do(t, newTestRouter(fc), http.MethodPatch, "/collections/Article/config",
		map[string]any{domcfg.FieldDeletionStrategy: "NOT_REAL", domcfg.FieldBM25B: 0.5}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != CodeInvalidEnumValue {
		t.Errorf("code = %s", resp.Code)
	}
	if len(fc.applied) != 0 {
		t.Error("nothing may be applied after a rejected enum")
	}
}

func TestPatchConfig_BadRequests(t *testing.T) {
	h := newTestRouter(newFakeCluster())

	rr := do(t, h, http.MethodPatch, "/collections/Article/config?prune=maybe", map[string]any{}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad prune: status = %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodPatch, "/collections/Article/config", bytes.NewBufferString("{not json"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad body: status = %d", rr.Code)
	}

	rr = do(t, h, http.MethodPatch, "/collections/Article/config", map[string]any{domcfg.FieldBM25B: "high"}, nil)
	if resp := decodeError(t, rr); rr.Code != http.StatusBadRequest || resp.Code != CodeInvalidFieldValue {
		t.Errorf("wrong type: status = %d code = %s", rr.Code, resp.Code)
	}
}

func TestRemoteErrorSurfacedVerbatim(t *testing.T) {
	fc := newFakeCluster()
	fc.err = &domain.RemoteError{Op: "list_collections", StatusCode: 500, Message: "shard Article_1 is read-only"}

	rr := do(t, newTestRouter(fc), http.MethodGet, "/collections", nil, nil)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Code != CodeRemoteError || resp.Message != "shard Article_1 is read-only" {
		t.Errorf("unexpected error: %+v", resp)
	}
	if resp.RemoteStatus == nil || *resp.RemoteStatus != 500 {
		t.Errorf("remote status = %v", resp.RemoteStatus)
	}
}

func TestInternalErrorHidden(t *testing.T) {
	fc := newFakeCluster()
	fc.err = errors.New("secret detail")

	rr := do(t, newTestRouter(fc), http.MethodGet, "/collections", nil, nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Message != "internal error" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestObject_SessionCachesTypeMap(t *testing.T) {
	fc := newFakeCluster()
	h := newTestRouter(fc)
	path := "/collections/Article/objects/" + testObjectID

	rr := do(t, h, http.MethodGet, path, nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	sid := rr.Header().Get(SessionHeader)
	if sid == "" {
		t.Fatal("session id not echoed")
	}
	var form objectuc.EditForm
	json.NewDecoder(rr.Body).Decode(&form)
	if len(form.Fields) != 2 || form.Fields[1].Name != "views" || form.Fields[1].Type != property.Int {
		t.Errorf("fields = %+v", form.Fields)
	}

	rr = do(t, h, http.MethodGet, path, nil, http.Header{SessionHeader: {sid}})
	if rr.Header().Get(SessionHeader) != sid {
		t.Errorf("session id changed: %s", rr.Header().Get(SessionHeader))
	}
	if fc.schemaCalls != 1 {
		t.Errorf("schema fetched %d times, want 1", fc.schemaCalls)
	}

	rr = do(t, h, http.MethodGet, path, nil, http.Header{SessionHeader: {"not-a-uuid"}})
	if got := rr.Header().Get(SessionHeader); got == "" || got == "not-a-uuid" || got == sid {
		t.Errorf("unknown id must start a new session, got %q", got)
	}
	if fc.schemaCalls != 2 {
		t.Errorf("schema fetched %d times, want 2", fc.schemaCalls)
	}
}

func TestGetObject_Errors(t *testing.T) {
	h := newTestRouter(newFakeCluster())
	rr := do(t, h, http.MethodGet, "/collections/Article/objects/123", nil, nil)
	if resp := decodeError(t, rr); rr.Code != http.StatusBadRequest || resp.Code != CodeInvalidObjectID {
		t.Errorf("bad id: status = %d code = %s", rr.Code, resp.Code)
	}

	fc := newFakeCluster()
	fc.err = fmt.Errorf("fetch_object: %w", domain.ErrObjectNotFound)
	fc.schema = nil
	rr = do(t, newTestRouter(fc), http.MethodGet, "/collections/Article/objects/"+testObjectID, nil, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing object: status = %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != CodeObjectNotFound {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestPatchObject_Saves(t *testing.T) {
	fc := newFakeCluster()
	rr := do(t, newTestRouter(fc), http.MethodPatch, "/collections/Article/objects/"+testObjectID+"?tenant=acme",
		map[string]any{"properties": map[string]any{"views": "12"}}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if got := fc.patched["views"]; got != int64(12) {
		t.Errorf("views = %#v", got)
	}
	if _, ok := fc.patched["title"]; ok {
		t.Error("unedited properties must not be written")
	}
	var form objectuc.EditForm
	json.NewDecoder(rr.Body).Decode(&form)
	if form.Tenant != "acme" {
		t.Errorf("tenant = %q", form.Tenant)
	}
}

func TestPatchObject_InvalidProperty(t *testing.T) {
	fc := newFakeCluster()
	rr := do(t, newTestRouter(fc), http.MethodPatch, "/collections/Article/objects/"+testObjectID,
		map[string]any{"properties": map[string]any{"views": "abc", "title": "ok"}}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Code != CodeInvalidPropertyValue || !reflect.DeepEqual(resp.Properties, []string{"views"}) {
		t.Errorf("unexpected error: %+v", resp)
	}
	if fc.patched != nil {
		t.Error("nothing may be written when a property fails to encode")
	}
}

func TestPatchObject_EmptyProperties(t *testing.T) {
	rr := do(t, newTestRouter(newFakeCluster()), http.MethodPatch, "/collections/Article/objects/"+testObjectID,
		map[string]any{"properties": map[string]any{}}, nil)
	if resp := decodeError(t, rr); rr.Code != http.StatusBadRequest || resp.Code != CodeValidationFailed {
		t.Errorf("status = %d code = %s", rr.Code, resp.Code)
	}
}

func TestTenants(t *testing.T) {
	fc := newFakeCluster()
	h := newTestRouter(fc)

	rr := do(t, h, http.MethodGet, "/collections/Article/tenants", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var listing tenantuc.Listing
	json.NewDecoder(rr.Body).Decode(&listing)
	if len(listing.Tenants) != 2 || listing.Tenants[0].Name != "a" || len(listing.States) != 2 {
		t.Errorf("listing = %+v", listing)
	}

	rr = do(t, h, http.MethodDelete, "/collections/Article/tenants", deleteTenantsRequest{Tenants: []string{"a"}}, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	if !reflect.DeepEqual(fc.deleted, []string{"a"}) {
		t.Errorf("deleted = %v", fc.deleted)
	}

	rr = do(t, h, http.MethodDelete, "/collections/Article/tenants", deleteTenantsRequest{}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("empty delete status = %d", rr.Code)
	}
}

func TestMultiTenantCollections(t *testing.T) {
	rr := do(t, newTestRouter(newFakeCluster()), http.MethodGet, "/multitenancy/collections", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp multiTenantResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp.Collections) != 1 || !resp.Collections[0].AutoTenantCreation {
		t.Errorf("collections = %+v", resp.Collections)
	}
}

func TestHealthCheck(t *testing.T) {
	fc := newFakeCluster()
	rr := do(t, newTestRouter(fc), http.MethodGet, "/health", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp healthResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Status != healthuc.Healthy || resp.Version != "1.25.3" {
		t.Errorf("unexpected response: %+v", resp)
	}

	fc.readyErr = errors.New("connection refused")
	rr = do(t, newTestRouter(fc), http.MethodGet, "/health", nil, nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("unready status = %d", rr.Code)
	}
}

func TestClusterStatus(t *testing.T) {
	rr := do(t, newTestRouter(newFakeCluster()), http.MethodGet, "/cluster/status", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp clusterStatusResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.CollectionCount != 2 || resp.ServerVersion != "1.25.3" || resp.Admin.Version == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
