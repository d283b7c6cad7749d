// Package metrics exposes libraryd counters in the Prometheus text
// exposition format (text/plain; version=0.0.4).
//
// A Registry holds labelled counters, histograms and gauge callbacks.
// Collector registers the libraryd families on top of it:
//
//   - libraryd_store_operations_total: store mutations (labels: resource, op)
//   - libraryd_records: records currently held (labels: resource)
//   - libraryd_http_requests_total: API requests (labels: method, route, status)
//   - libraryd_http_request_duration_seconds: API latency (labels: method, route)
//   - libraryd_event_subscribers: open event streams
//   - libraryd_uptime_seconds: seconds since the collector was created
//
// Usage:
//
//	c := metrics.NewCollector(catalog.Overview)
//	catalog, _ := library.New(library.Options{Observer: store.Multi(hub, c)})
//	mux.Handle("GET /metrics", c.Handler())
package metrics
