package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/domain"
	healthuc "github.com/gtmhub/searchd/internal/usecase/health"
)

// SearchService is the consumer interface over the search orchestrator.
type SearchService interface {
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error)
}

// HealthService is the consumer interface over the health use case.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP API handlers.
type Server struct {
	search SearchService
	health HealthService
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search SearchService, health HealthService, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, logger: logger}
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Query required"})
			return
		}
		s.logger.Error("Search pipeline failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Search failed",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health. Only an unhealthy content source maps to
// 503; degraded optional collaborators still serve traffic.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
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
