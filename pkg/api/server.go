package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/codtech/libraryd/pkg/apidocs"
	"github.com/codtech/libraryd/pkg/events"
	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/logging"
	"github.com/codtech/libraryd/pkg/metrics"
	"github.com/codtech/libraryd/pkg/store"
	"github.com/codtech/libraryd/pkg/validation"
)

// Server exposes a Catalog over HTTP.
type Server struct {
	catalog   *library.Catalog
	validator *validation.Validator
	hub       *events.Hub
	metrics   *store.MetricsObserver
	collector *metrics.Collector
	strict    bool
	version   string
	cfg       Config
	logger    *slog.Logger
	startTime time.Time

	docsJSON []byte
	docsYAML []byte
	handler  http.Handler
}

// New creates a Server for catalog.
func New(catalog *library.Catalog, opts ...Option) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("api: catalog is required")
	}

	s := &Server{
		catalog:   catalog,
		cfg:       DefaultConfig(),
		logger:    logging.Nop(),
		version:   "dev",
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.validator == nil {
		v, err := validation.New()
		if err != nil {
			return nil, fmt.Errorf("api: %w", err)
		}
		s.validator = v
	}
	if s.metrics == nil {
		s.metrics = store.NewMetricsObserver()
	}

	doc, err := apidocs.OpenAPI(apidocs.Info{Version: s.version})
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if s.docsJSON, err = apidocs.JSON(doc); err != nil {
		return nil, fmt.Errorf("api: render docs: %w", err)
	}
	if s.docsYAML, err = apidocs.YAML(doc); err != nil {
		return nil, fmt.Errorf("api: render docs: %w", err)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = s.withMiddleware(mux)
	return s, nil
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
// Request contexts, including open event streams, are cancelled with ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("library API listening", "address", ln.Addr().String(), "maxConnections", s.cfg.MaxConnections, "strictReferences", s.strict)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down library API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// uptime returns seconds since the server was created.
func (s *Server) uptime() int {
	return int(time.Since(s.startTime).Seconds())
}
