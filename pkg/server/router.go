package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
	"github.com/richardkiene/triton-cmon-agent/pkg/serializer"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)

	// Agent self-telemetry
	mux.Handle("GET /metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc("GET /v1/gz/metrics", s.withMiddleware(s.handleGZMetrics))
	mux.HandleFunc("GET /v1/{uuid}/metrics", s.withMiddleware(s.handleVMMetrics))
	mux.HandleFunc("POST /v1/refresh", s.withMiddleware(s.handleRefresh))
	mux.HandleFunc("GET /v1/snapshot", s.withMiddleware(s.handleSnapshot))

	// Additional routes, the default root handler included. The root
	// handler binds to "/{$}" so unknown paths still get a 404 and
	// known paths with the wrong method still get a 405.
	for pattern, handler := range s.config.Handlers {
		if pattern == "/" {
			mux.HandleFunc("/{$}", handler)
			continue
		}
		mux.HandleFunc(pattern, s.withMiddleware(handler))
	}

	return mux
}

// agentRoutes lists the fixed API surface for the root discovery response.
func agentRoutes() []string {
	return []string{
		"GET /v1/gz/metrics",
		"GET /v1/{uuid}/metrics",
		"POST /v1/refresh",
		"GET /v1/snapshot",
		"GET /metrics",
		"GET /health",
		"GET /ready",
	}
}

// handleDefault answers the root path with a small discovery document.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    agentRoutes(),
	}

	s.mu.RLock()
	resp.Ready = s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, resp)
}
