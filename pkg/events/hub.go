// Package events fans store change events out to live subscribers.
package events

import (
	"sync"
	"sync/atomic"

	"github.com/codtech/libraryd/pkg/store"
)

// DefaultBuffer is the per-subscriber channel capacity used when none is given.
const DefaultBuffer = 100

// Subscriber is a channel that receives store events.
type Subscriber chan store.Event

// Hub is a store.Observer that broadcasts every event to its subscribers.
// Delivery never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	buffer int

	mu          sync.RWMutex
	subscribers map[Subscriber]struct{}

	published atomic.Int64
	dropped   atomic.Int64
}

// NewHub creates a Hub whose subscribers get buffer slots each.
// A buffer <= 0 selects DefaultBuffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		buffer:      buffer,
		subscribers: make(map[Subscriber]struct{}),
	}
}

// Observe implements store.Observer.
func (h *Hub) Observe(ev store.Event) {
	h.published.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers {
		select {
		case sub <- ev:
		default:
			h.dropped.Add(1)
		}
	}
}

// Subscribe registers a subscriber.
// The returned function unsubscribes and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (Subscriber, func()) {
	ch := make(Subscriber, h.buffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Stats reports delivery counters.
type Stats struct {
	Subscribers int   `json:"subscribers"`
	Published   int64 `json:"published"`
	Dropped     int64 `json:"dropped"`
}

// Stats returns the current delivery counters.
func (h *Hub) Stats() Stats {
	return Stats{
		Subscribers: h.Subscribers(),
		Published:   h.published.Load(),
		Dropped:     h.dropped.Load(),
	}
}
