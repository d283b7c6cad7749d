package api

import (
	"net/http"
	"time"

	"github.com/codtech/libraryd/pkg/api/types"
	"github.com/codtech/libraryd/pkg/apidocs"
	"github.com/codtech/libraryd/pkg/httputil"
)

// handleHealth returns a simple liveness response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, types.HealthResponse{
		Status:    "ok",
		Uptime:    s.uptime(),
		Timestamp: time.Now().UTC(),
	})
}

// handleReset restores every collection to its seed data.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	counts := s.catalog.Reset()
	httputil.WriteOK(w, types.ResetResponse{
		Success: true,
		Message: apidocs.ResetMessage,
		Counts:  counts,
	})
}

// handleStats reports record counts and mutation counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := types.StatsResponse{
		Counts:     s.catalog.Overview(),
		Operations: s.metrics.Snapshot(),
		Uptime:     s.uptime(),
	}
	if s.hub != nil {
		resp.Events = s.hub.Stats()
	}
	httputil.WriteOK(w, resp)
}

func (s *Server) handleDocsJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.docsJSON)
}

func (s *Server) handleDocsYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.docsYAML)
}
