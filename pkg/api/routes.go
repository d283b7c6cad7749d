// Route registration for the library API.

package api

import (
	"net/http"

	"github.com/codtech/libraryd/pkg/library"
)

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.collector != nil {
		mux.Handle("GET /metrics", s.collector.Handler())
	}

	// Catalog collections
	register(s, mux, library.KindBooks, s.catalog.Books, s.checkBook)
	register(s, mux, library.KindAuthors, s.catalog.Authors, nil)
	register(s, mux, library.KindCategories, s.catalog.Categories, nil)

	// Catalog state
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/events", s.handleEvents)

	// Documentation
	mux.HandleFunc("GET /api/docs", s.handleDocsJSON)
	mux.HandleFunc("GET /api/docs.yaml", s.handleDocsYAML)
}

// checkBook enforces author and category references in strict mode.
func (s *Server) checkBook(b library.Book) error {
	if !s.strict {
		return nil
	}
	return s.catalog.CheckReferences(b)
}
