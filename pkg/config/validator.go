package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/codtech/libraryd/internal/id"
	"github.com/codtech/libraryd/pkg/logging"
)

// ValidationError represents a single config validation error.
type ValidationError struct {
	Path    string // Config path, e.g., "server.address"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult contains all validation errors for a Config.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return "invalid configuration:\n  " + strings.Join(msgs, "\n  ")
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

// Validate checks the configuration. The returned error, when non-nil, is a
// *ValidationResult listing every problem found.
func (c *Config) Validate() error {
	result := &ValidationResult{}

	if c.Server.Address == "" {
		result.AddError("server.address", "required")
	}
	durations := []struct {
		path  string
		value time.Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value < 0 {
			result.AddError(d.path, "must not be negative")
		}
	}
	if c.Server.MaxConnections < 0 {
		result.AddError("server.maxConnections", fmt.Sprintf("invalid value %d, must be 0 (unlimited) or more", c.Server.MaxConnections))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		result.AddError("log.level", err.Error())
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		result.AddError("log.format", err.Error())
	}

	if _, err := id.New(id.Strategy(c.Catalog.IDStrategy)); err != nil {
		result.AddError("catalog.idStrategy", err.Error())
	}
	for i, pattern := range c.Catalog.SeedFiles {
		if !doublestar.ValidatePattern(pattern) {
			result.AddError(fmt.Sprintf("catalog.seedFiles[%d]", i), fmt.Sprintf("invalid glob pattern %q", pattern))
		}
	}

	if result.IsValid() {
		return nil
	}
	return result
}
