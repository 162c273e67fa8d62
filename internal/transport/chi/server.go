package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/marksearch/internal/domain"
	"github.com/kailas-cloud/marksearch/internal/domain/search/request"
	bookmarkuc "github.com/kailas-cloud/marksearch/internal/usecase/bookmark"
	healthuc "github.com/kailas-cloud/marksearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/marksearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the bookmark search HTTP API.
type Server struct {
	bookmarks     *bookmarkuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	bookmarks *bookmarkuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		bookmarks: bookmarks,
		search:    search,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrBookmarkNotFound, http.StatusNotFound, ErrorCodeBookmarkNotFound),
		sentinelHandler(domain.ErrReadOnlySource, http.StatusConflict, ErrorCodeReadOnlySource),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.Search)
	r.Route("/bookmarks", func(r chi.Router) {
		r.Get("/", s.ListBookmarks)
		r.Post("/", s.CreateBookmark)
		r.Get("/{id}", s.GetBookmark)
		r.Put("/{id}", s.PutBookmark)
		r.Delete("/{id}", s.DeleteBookmark)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var (
		q        *string
		limit    *int
		minScore *float64
	)
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", query, &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid parameter q")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid parameter limit")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "min_score", query, &minScore); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid parameter min_score")
		return
	}

	req, err := request.New(deref(q), deref(limit), deref(minScore))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToResponse(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Items: items,
		Total: len(items),
		Limit: req.Limit(),
	})
}

// ListBookmarks handles GET /bookmarks.
func (s *Server) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.bookmarks.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]BookmarkResponse, len(bookmarks))
	for i, b := range bookmarks {
		items[i] = bookmarkToResponse(b)
	}
	writeJSON(w, http.StatusOK, BookmarkListResponse{Items: items, Total: len(items)})
}

// GetBookmark handles GET /bookmarks/{id}.
func (s *Server) GetBookmark(w http.ResponseWriter, r *http.Request) {
	b, err := s.bookmarks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarkToResponse(b))
}

// CreateBookmark handles POST /bookmarks.
func (s *Server) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	var req BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	b, err := s.bookmarks.Create(r.Context(), req.Title, req.URL, req.Folder)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/bookmarks/"+b.ID())
	writeJSON(w, http.StatusCreated, bookmarkToResponse(b))
}

// PutBookmark handles PUT /bookmarks/{id}.
func (s *Server) PutBookmark(w http.ResponseWriter, r *http.Request) {
	var req BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	b, created, err := s.bookmarks.Save(r.Context(), chi.URLParam(r, "id"), req.Title, req.URL, req.Folder)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, bookmarkToResponse(b))
}

// DeleteBookmark handles DELETE /bookmarks/{id}.
func (s *Server) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.bookmarks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Validation errors keep their detail
// since it only describes the caller's input.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrBookmarkNotFound,
		domain.ErrReadOnlySource,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
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
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
