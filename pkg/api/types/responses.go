// Package types provides the request and response bodies shared by the API
// server and its client.
package types

import (
	"time"

	"github.com/codtech/libraryd/pkg/events"
	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/store"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
	Details any    `json:"details,omitempty"`
}

// HealthResponse is a simple health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Uptime    int       `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// DeleteResponse acknowledges a removed record.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ResetResponse reports the record counts after a reset.
type ResetResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Counts  library.Overview `json:"counts"`
}

// StatsResponse reports catalog sizes and mutation counters.
type StatsResponse struct {
	Counts     library.Overview      `json:"counts"`
	Operations store.MetricsSnapshot `json:"operations"`
	Events     events.Stats          `json:"events"`
	Uptime     int                   `json:"uptime"`
}
