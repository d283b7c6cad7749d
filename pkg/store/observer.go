package store

import (
	"sync/atomic"
	"time"
)

// Op identifies the mutation that produced an Event.
type Op string

// Mutation kinds.
const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpReset  Op = "reset"
)

// Event describes one successful store mutation.
type Event struct {
	Resource string    `json:"resource"`
	Op       Op        `json:"op"`
	ID       string    `json:"id,omitempty"`
	Record   any       `json:"record,omitempty"`
	Count    int       `json:"count,omitempty"`
	At       time.Time `json:"at"`
}

// Observer receives store events.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) { f(ev) }

// NoopObserver discards events.
type NoopObserver struct{}

func (NoopObserver) Observe(Event) {}

// Multi returns an Observer that forwards each event to every non-nil observer in order.
func Multi(observers ...Observer) Observer {
	list := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return multiObserver(list)
}

type multiObserver []Observer

func (m multiObserver) Observe(ev Event) {
	for _, o := range m {
		o.Observe(ev)
	}
}

// MetricsObserver counts mutations. It is safe for concurrent use.
type MetricsObserver struct {
	insertCount atomic.Int64
	updateCount atomic.Int64
	deleteCount atomic.Int64
	resetCount  atomic.Int64
}

// NewMetricsObserver creates a new metrics observer.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// Observe records ev.
func (m *MetricsObserver) Observe(ev Event) {
	switch ev.Op {
	case OpInsert:
		m.insertCount.Add(1)
	case OpUpdate:
		m.updateCount.Add(1)
	case OpDelete:
		m.deleteCount.Add(1)
	case OpReset:
		m.resetCount.Add(1)
	}
}

// Snapshot returns a copy of the current counters.
func (m *MetricsObserver) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		InsertCount: m.insertCount.Load(),
		UpdateCount: m.updateCount.Load(),
		DeleteCount: m.deleteCount.Load(),
		ResetCount:  m.resetCount.Load(),
	}
}

// MetricsSnapshot is a point-in-time copy of MetricsObserver counters.
type MetricsSnapshot struct {
	InsertCount int64 `json:"insertCount"`
	UpdateCount int64 `json:"updateCount"`
	DeleteCount int64 `json:"deleteCount"`
	ResetCount  int64 `json:"resetCount"`
}

// Total returns the number of mutations observed.
func (s MetricsSnapshot) Total() int64 {
	return s.InsertCount + s.UpdateCount + s.DeleteCount + s.ResetCount
}
