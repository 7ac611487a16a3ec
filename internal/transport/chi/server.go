// Package chi exposes the HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stadtlab/datenkarte/internal/domain"
	"github.com/stadtlab/datenkarte/internal/domain/geo"
	"github.com/stadtlab/datenkarte/internal/metrics"
	cataloguc "github.com/stadtlab/datenkarte/internal/usecase/catalog"
	healthuc "github.com/stadtlab/datenkarte/internal/usecase/health"
	searchuc "github.com/stadtlab/datenkarte/internal/usecase/search"
	workspaceuc "github.com/stadtlab/datenkarte/internal/usecase/workspace"
)

// minSuggestQueryLen is the UI convention for dataset picker suggestions.
// The catalog service itself places no minimum; the transport does.
const minSuggestQueryLen = 2

// errorCode values returned in error payloads.
type errorCode string

const (
	codeBadRequest        errorCode = "bad_request"
	codeValidationFailed  errorCode = "validation_failed"
	codeWorkspaceNotFound errorCode = "workspace_not_found"
	codeAlreadyExists     errorCode = "already_exists"
	codeInternalError     errorCode = "internal_error"
)

// errorResponse is the wire shape of every error payload.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services into HTTP handlers.
type Server struct {
	search        *searchuc.Service
	catalog       *cataloguc.Service
	workspaces    *workspaceuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. workspaces may be nil when no
// workspace store is configured; the workspace routes then return 404.
func NewServer(
	search *searchuc.Service,
	catalog *cataloguc.Service,
	workspaces *workspaceuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:     search,
		catalog:    catalog,
		workspaces: workspaces,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrWorkspaceNotFound, http.StatusNotFound, codeWorkspaceNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/search", s.handleSearch)
	r.Get("/api/datasets", s.handleListDatasets)
	r.Get("/api/datasets/suggest", s.handleSuggestDatasets)
	r.Get("/api/stats", s.handleStats)
	r.Get("/api/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	if s.workspaces != nil {
		r.Post("/api/workspaces", s.handleCreateWorkspace)
		r.Get("/api/workspaces", s.handleListWorkspaces)
		r.Get("/api/workspaces/{id}", s.handleGetWorkspace)
		r.Delete("/api/workspaces/{id}", s.handleDeleteWorkspace)
		r.Get("/api/workspaces/{id}/search", s.handleWorkspaceSearch)
	}
}

// handleSearch handles GET /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	origin, err := parseOrigin(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	query := r.URL.Query().Get("q")
	ids := splitIDs(r.URL.Query().Get("datasets"))

	s.runSearch(w, r, query, ids, origin)
}

// handleWorkspaceSearch handles GET /api/workspaces/{id}/search by
// resolving the workspace's dataset ids first. Stale dataset references
// inside the workspace are tolerated by the engine.
func (s *Server) handleWorkspaceSearch(w http.ResponseWriter, r *http.Request) {
	origin, err := parseOrigin(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	ids, err := s.workspaces.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.runSearch(w, r, r.URL.Query().Get("q"), ids, origin)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, query string, ids []string, origin *geo.Origin) {
	res, err := s.search.Search(r.Context(), searchuc.Query{
		Text:       query,
		DatasetIDs: ids,
		Origin:     origin,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(strconv.FormatBool(origin != nil)).Inc()
	metrics.SearchResultCount.Observe(float64(len(res.Features)))

	resp, err := searchResultToJSON(query, res)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListDatasets handles GET /api/datasets.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	infos := s.catalog.List(r.Context())

	items := make([]datasetInfoJSON, len(infos))
	for i, info := range infos {
		items[i] = infoToJSON(info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": items})
}

// handleSuggestDatasets handles GET /api/datasets/suggest.
func (s *Server) handleSuggestDatasets(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len([]rune(query)) < minSuggestQueryLen {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query must be at least 2 characters")
		return
	}

	infos := s.catalog.Suggest(r.Context(), query)
	items := make([]datasetInfoJSON, len(infos))
	for i, info := range infos {
		items[i] = infoToJSON(info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": items})
}

// handleStats handles GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalDatasets":   stats.TotalDatasets,
		"totalFeatures":   stats.TotalFeatures,
		"totalWorkspaces": stats.TotalWorkspaces,
	})
}

// createWorkspaceRequest is the wire shape of POST /api/workspaces.
type createWorkspaceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	DatasetIDs  []string `json:"datasetIds"`
}

// handleCreateWorkspace handles POST /api/workspaces.
func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req createWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	ws, err := s.workspaces.Create(r.Context(), req.Name, req.Description, req.DatasetIDs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workspaceToJSON(ws))
}

// handleListWorkspaces handles GET /api/workspaces.
func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	list, err := s.workspaces.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]workspaceJSON, len(list))
	for i, ws := range list {
		items[i] = workspaceToJSON(ws)
	}
	writeJSON(w, http.StatusOK, map[string]any{"workspaces": items})
}

// handleGetWorkspace handles GET /api/workspaces/{id}.
func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspaces.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workspaceToJSON(ws))
}

// handleDeleteWorkspace handles DELETE /api/workspaces/{id}.
func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.workspaces.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// parseOrigin reads lat/lon query params. Both absent means no origin;
// one without the other, or unparsable values, is the caller's mistake.
// Range validation happens in the search service.
func parseOrigin(r *http.Request) (*geo.Origin, error) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon must be provided together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("lon must be a number")
	}

	return &geo.Origin{Lat: lat, Lon: lon}, nil
}

// splitIDs parses the comma-separated datasets parameter. An empty value
// yields an empty selection, mirroring the "nothing selected" UI state.
func splitIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrWorkspaceNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
