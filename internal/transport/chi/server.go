// Package chi wires the HTTP surface: health, metrics and the MCP endpoint.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/metrics"
	healthuc "github.com/kailas-cloud/metasearch/internal/usecase/health"
)

// Error codes returned in JSON error bodies.
const (
	codeUnauthorized = "unauthorized"
	codeInternal     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server serves the HTTP routes.
type Server struct {
	health *healthuc.Service
	mcp    http.Handler
	logger *zap.Logger
}

// NewServer creates an HTTP server. mcpHandler serves every /mcp request.
func NewServer(health *healthuc.Service, mcpHandler http.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{health: health, mcp: mcpHandler, logger: logger}
}

// Router builds the chi router with the middleware chain.
// An empty token disables bearer auth on /mcp.
func (s *Server) Router(authToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(authToken))

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Handle("/mcp", s.mcp)
	r.Handle("/mcp/*", s.mcp)
	return r
}

// HealthCheck handles GET /health. It always answers 200; degradation is reported in the body.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
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

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
