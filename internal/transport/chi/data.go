package chi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	domobj "github.com/raywlfun/WeaviateDBCluster/internal/domain/object"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
	ingestuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/ingest"
)

type searchRequest struct {
	Query  string   `json:"query"`
	Mode   string   `json:"mode,omitempty"`
	Alpha  *float64 `json:"alpha,omitempty"`
	Limit  int      `json:"limit,omitempty"`
	Tenant string   `json:"tenant,omitempty"`
}

type searchResponse struct {
	Collection string          `json:"collection"`
	Mode       domsearch.Mode  `json:"mode"`
	TookMillis int64           `json:"took_ms"`
	Hits       []domsearch.Hit `json:"hits"`
}

// Search handles POST /collections/{collection}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	collection := chi.URLParam(r, "collection")
	sr, err := domsearch.NewRequest(collection, req.Tenant, req.Query, domsearch.Mode(req.Mode), req.Alpha, req.Limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.search.Search(r.Context(), sr)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Collection: collection,
		Mode:       res.Mode,
		TookMillis: res.Took.Milliseconds(),
		Hits:       res.Hits,
	})
}

type objectItem struct {
	ID         string         `json:"id"`
	Tenant     string         `json:"tenant,omitempty"`
	Properties map[string]any `json:"properties"`
	CreatedAt  *time.Time     `json:"created_at,omitempty"`
	UpdatedAt  *time.Time     `json:"updated_at,omitempty"`
}

type objectPageResponse struct {
	Collection string       `json:"collection"`
	Tenant     string       `json:"tenant,omitempty"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	Total      int64        `json:"total"`
	TotalPages int          `json:"total_pages"`
	Objects    []objectItem `json:"objects"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func queryInt(r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// ListObjects handles GET /collections/{collection}/objects?page=&per_page=&tenant=.
func (s *Server) ListObjects(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(r, "page")
	if !ok {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "page must be an integer")
		return
	}
	size, ok := queryInt(r, "per_page")
	if !ok {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "per_page must be an integer")
		return
	}
	req, err := domobj.NewPageRequest(page, size)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	collection := chi.URLParam(r, "collection")
	tenant := r.URL.Query().Get("tenant")
	p, err := s.browse.Page(r.Context(), collection, tenant, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]objectItem, len(p.Objects))
	for i := range p.Objects {
		o := &p.Objects[i]
		items[i] = objectItem{
			ID:         o.ID(),
			Tenant:     o.Tenant(),
			Properties: o.Properties(),
			CreatedAt:  optionalTime(o.CreatedAt()),
			UpdatedAt:  optionalTime(o.UpdatedAt()),
		}
	}
	writeJSON(w, http.StatusOK, objectPageResponse{
		Collection: collection,
		Tenant:     tenant,
		Page:       p.Page,
		PerPage:    p.Size,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Objects:    items,
	})
}

type uploadRequest struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

// UploadObjects handles POST /collections/{collection}/objects.
// The body carries a csv or json file as text.
func (s *Server) UploadObjects(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decodeLimited(w, r, &req, maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	report, err := s.ingest.Upload(r.Context(), chi.URLParam(r, "collection"), req.Format, []byte(req.Data))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type createCollectionRequest struct {
	Name       string `json:"name"`
	Vectorizer string `json:"vectorizer"`
	Format     string `json:"format"`
	Data       string `json:"data"`
}

// CreateCollection handles POST /collections.
func (s *Server) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if err := decodeLimited(w, r, &req, maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	created, err := s.ingest.Create(r.Context(), ingestuc.CreateRequest{
		Name:       req.Name,
		Vectorizer: req.Vectorizer,
		Format:     req.Format,
		Data:       []byte(req.Data),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// CollectionInfo handles GET /collections/{collection}/info.
func (s *Server) CollectionInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.ingest.Info(r.Context(), chi.URLParam(r, "collection"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
