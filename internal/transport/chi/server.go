// Package chi exposes the retrieval tool over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtool/internal/domain"
	"github.com/kailas-cloud/ragtool/internal/logger"
	"github.com/kailas-cloud/ragtool/internal/usecase/retrieval"
	"github.com/kailas-cloud/ragtool/internal/version"
)

// RetrievalService is the use case contract the server depends on.
type RetrievalService interface {
	Search(ctx context.Context, in retrieval.Input) (string, error)
}

// HealthCheck is a named dependency probe run by GET /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server handles HTTP requests for the retrieval tool.
type Server struct {
	retrieval RetrievalService
	checks    []HealthCheck
	logger    *zap.Logger
}

// NewServer creates an HTTP server over the retrieval service.
func NewServer(svc RetrievalService, checks []HealthCheck, log *zap.Logger) *Server {
	return &Server{retrieval: svc, checks: checks, logger: log}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/retrieve", s.handleRetrieve)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeBadRequest    = "bad_request"
	codeInternalError = "internal_error"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: code, Message: message})
}

// handleRetrieve accepts {"query": "..."} and responds with the tool's text
// output. Sentinel strings ship with status 200: the text contract treats
// upstream failures as content, not transport errors.
func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	var in retrieval.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "body must be a JSON object with a string field \"query\"")
		return
	}

	text, err := s.retrieval.Search(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		logger.FromContext(r.Context()).Error("Retrieve failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// healthResponse reports overall status plus per-dependency detail.
type healthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Version: version.Version,
	}

	status := http.StatusOK
	if len(s.checks) > 0 {
		resp.Components = make(map[string]string, len(s.checks))
		for _, c := range s.checks {
			if err := c.Check(r.Context()); err != nil {
				resp.Components[c.Name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Components[c.Name] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
