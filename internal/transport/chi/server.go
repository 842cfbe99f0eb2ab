// Package chi is the HTTP admin API of wvadmin.
package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domcfg "github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
	logpkg "github.com/raywlfun/WeaviateDBCluster/internal/logger"
	"github.com/raywlfun/WeaviateDBCluster/internal/version"
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

// Request body limits. Imports carry whole csv or json files.
const (
	maxBodyBytes   = 4 << 20
	maxUploadBytes = 64 << 20
)

// Server serves the admin API.
type Server struct {
	configs       *configuc.Service
	objects       *objectuc.Service
	tenants       *tenantuc.Service
	sessions      *sessionuc.Service
	search        *searchuc.Service
	browse        *browseuc.Service
	ingest        *ingestuc.Service
	rbac          *rbacuc.Service
	cluster       *clusteruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	configs *configuc.Service,
	objects *objectuc.Service,
	tenants *tenantuc.Service,
	sessions *sessionuc.Service,
	search *searchuc.Service,
	browse *browseuc.Service,
	ingest *ingestuc.Service,
	rbac *rbacuc.Service,
	cluster *clusteruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		configs:       configs,
		objects:       objects,
		tenants:       tenants,
		sessions:      sessions,
		search:        search,
		browse:        browse,
		ingest:        ingest,
		rbac:          rbac,
		cluster:       cluster,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Mount registers all routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/multitenancy/collections", s.MultiTenantCollections)

	r.Route("/cluster", func(r chi.Router) {
		r.Get("/status", s.ClusterStatus)
		r.Get("/nodes", s.ClusterNodes)
		r.Get("/shards", s.ClusterShards)
		r.Get("/consistency", s.ShardConsistency)
		r.Get("/meta", s.ClusterMeta)
		r.Get("/properties", s.CollectionProperties)
	})

	r.Route("/rbac", func(r chi.Router) {
		r.Get("/users", s.ListUsers)
		r.Get("/roles", s.ListRoles)
		r.Get("/permissions", s.ListPermissions)
		r.Get("/assignments", s.ListAssignments)
	})

	r.Route("/collections", func(r chi.Router) {
		r.Get("/", s.ListCollections)
		r.Post("/", s.CreateCollection)
		r.Route("/{collection}", func(r chi.Router) {
			r.Delete("/", s.DeleteCollection)
			r.Get("/info", s.CollectionInfo)
			r.Post("/search", s.Search)

			r.Get("/objects", s.ListObjects)
			r.Post("/objects", s.UploadObjects)

			r.Get("/config", s.GetConfig)
			r.Get("/config/form", s.GetConfigForm)
			r.Patch("/config", s.PatchConfig)

			r.Get("/tenants", s.ListTenants)
			r.Delete("/tenants", s.DeleteTenants)

			r.Group(func(r chi.Router) {
				r.Use(s.sessionMiddleware)
				r.Get("/objects/{id}", s.GetObject)
				r.Patch("/objects/{id}", s.PatchObject)
			})
		})
	})
}

// log returns the request-scoped logger, falling back to the server logger.
func (s *Server) log(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}

// decodeBody reads a JSON body keeping numbers as json.Number.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeLimited(w, r, v, maxBodyBytes)
}

func decodeLimited(w http.ResponseWriter, r *http.Request, v any, limit int64) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.UseNumber()
	return dec.Decode(v)
}

type healthResponse struct {
	Status  healthuc.Status                 `json:"status"`
	Checks  map[string]healthuc.CheckResult `json:"checks"`
	Version string                          `json:"version,omitempty"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  report.Status,
		Checks:  report.Checks,
		Version: report.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type clusterStatusResponse struct {
	Status          healthuc.Status `json:"status"`
	ServerVersion   string          `json:"server_version,omitempty"`
	CollectionCount int             `json:"collection_count"`
	Admin           version.Info    `json:"admin"`
}

// ClusterStatus handles GET /cluster/status.
func (s *Server) ClusterStatus(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	resp := clusterStatusResponse{
		Status:        report.Status,
		ServerVersion: report.Version,
		Admin:         version.Get(),
	}
	if report.Status != healthuc.Unhealthy {
		names, err := s.configs.List(r.Context())
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		resp.CollectionCount = len(names)
	}
	writeJSON(w, http.StatusOK, resp)
}

type collectionsResponse struct {
	Collections []string `json:"collections"`
}

// ListCollections handles GET /collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	names, err := s.configs.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionsResponse{Collections: names})
}

// DeleteCollection handles DELETE /collections/{collection}.
func (s *Server) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	if err := s.configs.Delete(r.Context(), chi.URLParam(r, "collection")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type configResponse struct {
	Collection      string       `json:"collection"`
	VectorIndexType string       `json:"vector_index_type,omitempty"`
	Rows            []domcfg.Row `json:"rows"`
}

// GetConfig handles GET /collections/{collection}/config.
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	view, err := s.configs.Get(r.Context(), collection)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{
		Collection:      collection,
		VectorIndexType: view.Snapshot.VectorIndexType,
		Rows:            view.Rows,
	})
}

type formField struct {
	Name    string   `json:"name"`
	Value   any      `json:"value"`
	Options []string `json:"options,omitempty"`
}

type configFormResponse struct {
	Collection string      `json:"collection"`
	Fields     []formField `json:"fields"`
}

// GetConfigForm handles GET /collections/{collection}/config/form.
func (s *Server) GetConfigForm(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	form, err := s.configs.Form(r.Context(), collection)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	options := domcfg.Options()
	fields := make([]formField, 0, len(form))
	for _, name := range domcfg.Fields() {
		fields = append(fields, formField{Name: name, Value: form[name], Options: options[name]})
	}
	writeJSON(w, http.StatusOK, configFormResponse{Collection: collection, Fields: fields})
}

type configUpdateResponse struct {
	Collection string        `json:"collection"`
	Applied    bool          `json:"applied"`
	Groups     []string      `json:"groups"`
	Update     domcfg.Update `json:"update"`
}

// PatchConfig handles PATCH /collections/{collection}/config.
// The body is a flat edit set; ?prune=true drops edits equal to current values.
func (s *Server) PatchConfig(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	prune := false
	if v := r.URL.Query().Get("prune"); v != "" {
		p, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "prune must be a boolean")
			return
		}
		prune = p
	}

	var edits domcfg.EditSet
	if err := decodeBody(w, r, &edits); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	u, err := s.configs.Update(r.Context(), collection, edits, prune)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	groups := u.Groups()
	if groups == nil {
		groups = []string{}
	}
	writeJSON(w, http.StatusOK, configUpdateResponse{
		Collection: collection,
		Applied:    !u.IsEmpty(),
		Groups:     groups,
		Update:     u,
	})
}

// ListTenants handles GET /collections/{collection}/tenants.
func (s *Server) ListTenants(w http.ResponseWriter, r *http.Request) {
	listing, err := s.tenants.List(r.Context(), chi.URLParam(r, "collection"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

type deleteTenantsRequest struct {
	Tenants []string `json:"tenants"`
}

// DeleteTenants handles DELETE /collections/{collection}/tenants.
func (s *Server) DeleteTenants(w http.ResponseWriter, r *http.Request) {
	var req deleteTenantsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.tenants.Delete(r.Context(), chi.URLParam(r, "collection"), req.Tenants); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type multiTenantResponse struct {
	Collections []domtenant.Collection `json:"collections"`
}

// MultiTenantCollections handles GET /multitenancy/collections.
func (s *Server) MultiTenantCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := s.tenants.MultiTenantCollections(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, multiTenantResponse{Collections: cols})
}

// GetObject handles GET /collections/{collection}/objects/{id}.
func (s *Server) GetObject(w http.ResponseWriter, r *http.Request) {
	form, err := s.objects.Load(
		r.Context(),
		sessionFromContext(r.Context()),
		chi.URLParam(r, "collection"),
		chi.URLParam(r, "id"),
		r.URL.Query().Get("tenant"),
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

type patchObjectRequest struct {
	Properties map[string]any `json:"properties"`
}

// PatchObject handles PATCH /collections/{collection}/objects/{id}.
// Only the listed properties are written.
func (s *Server) PatchObject(w http.ResponseWriter, r *http.Request) {
	var req patchObjectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	form, err := s.objects.Save(
		r.Context(),
		sessionFromContext(r.Context()),
		chi.URLParam(r, "collection"),
		chi.URLParam(r, "id"),
		r.URL.Query().Get("tenant"),
		req.Properties,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}
