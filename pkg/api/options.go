// Option functions for configuring Server.

package api

import (
	"log/slog"
	"time"

	"github.com/codtech/libraryd/pkg/events"
	"github.com/codtech/libraryd/pkg/logging"
	"github.com/codtech/libraryd/pkg/metrics"
	"github.com/codtech/libraryd/pkg/store"
	"github.com/codtech/libraryd/pkg/validation"
)

// Config holds the listener settings.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// MaxConnections caps concurrent connections; 0 means unlimited.
	MaxConnections int
	// CORSOrigins lists the origins allowed to call the API. Empty allows all.
	CORSOrigins []string
}

// DefaultConfig returns the default listener settings.
func DefaultConfig() Config {
	return Config{
		Address:         ":4280",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the listener settings.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.logger = log
		} else {
			s.logger = logging.Nop()
		}
	}
}

// WithHub enables GET /api/events. The hub must also observe the catalog's stores.
func WithHub(hub *events.Hub) Option {
	return func(s *Server) {
		s.hub = hub
	}
}

// WithMetrics reports the given counters from GET /api/stats.
// The observer must also observe the catalog's stores.
func WithMetrics(m *store.MetricsObserver) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithCollector enables GET /metrics and records per-request metrics.
// The collector must also observe the catalog's stores for store operation counts.
func WithCollector(c *metrics.Collector) Option {
	return func(s *Server) {
		s.collector = c
	}
}

// WithStrictReferences rejects books whose author or category does not exist.
func WithStrictReferences(strict bool) Option {
	return func(s *Server) {
		s.strict = strict
	}
}

// WithValidator replaces the request body validator.
func WithValidator(v *validation.Validator) Option {
	return func(s *Server) {
		s.validator = v
	}
}

// WithVersion sets the version reported in the OpenAPI document.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}
