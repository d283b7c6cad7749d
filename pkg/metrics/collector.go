package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/store"
)

// Sources supplies the values Collector reads at scrape time. Nil fields are skipped.
type Sources struct {
	// Records reports the current record counts.
	Records func() library.Overview
	// Subscribers reports the number of open event streams.
	Subscribers func() int
}

// Collector holds the libraryd metric families and implements store.Observer.
type Collector struct {
	registry *Registry
	storeOps *Counter
	requests *Counter
	duration *Histogram
	start    time.Time
}

// NewCollector registers the libraryd metrics on a fresh Registry.
func NewCollector(src Sources) *Collector {
	r := NewRegistry()
	c := &Collector{
		registry: r,
		storeOps: r.NewCounter("libraryd_store_operations_total", "Store mutations by resource and operation.", "resource", "op"),
		requests: r.NewCounter("libraryd_http_requests_total", "API requests by method, route and status.", "method", "route", "status"),
		duration: r.NewHistogram("libraryd_http_request_duration_seconds", "API request latency in seconds.", DefaultBuckets, "method", "route"),
		start:    time.Now(),
	}

	r.NewGaugeFunc("libraryd_records", "Records currently held by resource.", func() []Sample {
		if src.Records == nil {
			return nil
		}
		ov := src.Records()
		return []Sample{
			{Labels: map[string]string{"resource": string(library.KindBooks)}, Value: float64(ov.Books)},
			{Labels: map[string]string{"resource": string(library.KindAuthors)}, Value: float64(ov.Authors)},
			{Labels: map[string]string{"resource": string(library.KindCategories)}, Value: float64(ov.Categories)},
		}
	})
	r.NewGaugeFunc("libraryd_event_subscribers", "Open event streams.", func() []Sample {
		if src.Subscribers == nil {
			return nil
		}
		return []Sample{{Value: float64(src.Subscribers())}}
	})
	r.NewGaugeFunc("libraryd_uptime_seconds", "Seconds since the server started.", func() []Sample {
		return []Sample{{Value: time.Since(c.start).Seconds()}}
	})
	return c
}

// Observe counts a store mutation.
func (c *Collector) Observe(ev store.Event) {
	_ = c.storeOps.Inc(ev.Resource, string(ev.Op))
}

// ObserveRequest records one finished API request.
// route is the matched route pattern, not the raw path.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	_ = c.requests.Inc(method, route, strconv.Itoa(status))
	_ = c.duration.Observe(elapsed.Seconds(), method, route)
}

// StoreOperations returns the count of op on resource.
func (c *Collector) StoreOperations(resource string, op store.Op) float64 {
	return c.storeOps.Value(resource, string(op))
}

// Requests returns the count of requests for method, route and status.
func (c *Collector) Requests(method, route string, status int) float64 {
	return c.requests.Value(method, route, strconv.Itoa(status))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *Registry {
	return c.registry
}

// Handler serves the metrics in the text exposition format.
func (c *Collector) Handler() http.Handler {
	return c.registry.Handler()
}
