package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// atomicFloat64 stores the bits of a float64 for atomic access.
type atomicFloat64 struct {
	bits uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&a.bits))
}

// Add adds delta using a CAS loop.
func (a *atomicFloat64) Add(delta float64) {
	for {
		old := atomic.LoadUint64(&a.bits)
		next := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&a.bits, old, math.Float64bits(next)) {
			return
		}
	}
}

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is a family of samples sharing a name.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Collect returns the samples for exposition, ordered by labels.
	Collect() []Sample
}

// Sample is a single metric sample with labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// labelSet maps label values to one series per combination.
type labelSet[V any] struct {
	metric string
	names  []string
	mu     sync.RWMutex
	series map[string]*series[V]
	create func() *V
}

type series[V any] struct {
	labels map[string]string
	value  *V
}

func newLabelSet[V any](metric string, names []string, create func() *V) *labelSet[V] {
	return &labelSet[V]{metric: metric, names: names, series: make(map[string]*series[V]), create: create}
}

// get returns the series for values, creating it on first use.
func (l *labelSet[V]) get(values []string) (*V, error) {
	if len(values) != len(l.names) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d", ErrLabelCountMismatch, l.metric, len(l.names), len(values))
	}

	key := strings.Join(values, "\x00")
	l.mu.RLock()
	s, ok := l.series[key]
	l.mu.RUnlock()
	if ok {
		return s.value, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok = l.series[key]; !ok {
		labels := make(map[string]string, len(l.names))
		for i, name := range l.names {
			labels[name] = values[i]
		}
		s = &series[V]{labels: labels, value: l.create()}
		l.series[key] = s
	}
	return s.value, nil
}

// each calls fn for every series in label order.
func (l *labelSet[V]) each(fn func(labels map[string]string, v *V)) {
	l.mu.RLock()
	keys := make([]string, 0, len(l.series))
	for k := range l.series {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	picked := make([]*series[V], len(keys))
	for i, k := range keys {
		picked[i] = l.series[k]
	}
	l.mu.RUnlock()

	for _, s := range picked {
		fn(s.labels, s.value)
	}
}

// =============================================================================
// Counter
// =============================================================================

// Counter is a monotonically increasing metric.
type Counter struct {
	name string
	help string
	set  *labelSet[atomicFloat64]
}

func (c *Counter) Name() string     { return c.name }
func (c *Counter) Help() string     { return c.help }
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// Add adds delta to the series identified by values.
func (c *Counter) Add(delta float64, values ...string) error {
	if delta < 0 {
		return fmt.Errorf("%w: counter %s", ErrNegativeCounterValue, c.name)
	}
	v, err := c.set.get(values)
	if err != nil {
		return err
	}
	v.Add(delta)
	return nil
}

// Inc increments the series identified by values.
func (c *Counter) Inc(values ...string) error {
	return c.Add(1, values...)
}

// Value returns the current value of a series; 0 if it was never touched.
func (c *Counter) Value(values ...string) float64 {
	c.set.mu.RLock()
	s, ok := c.set.series[strings.Join(values, "\x00")]
	c.set.mu.RUnlock()
	if !ok {
		return 0
	}
	return s.value.Load()
}

func (c *Counter) Collect() []Sample {
	var samples []Sample
	c.set.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: c.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

// =============================================================================
// GaugeFunc
// =============================================================================

// GaugeFunc is a gauge whose samples are computed at scrape time.
type GaugeFunc struct {
	name    string
	help    string
	collect func() []Sample
}

func (g *GaugeFunc) Name() string     { return g.name }
func (g *GaugeFunc) Help() string     { return g.help }
func (g *GaugeFunc) Type() MetricType { return MetricTypeGauge }

func (g *GaugeFunc) Collect() []Sample {
	samples := g.collect()
	for i := range samples {
		samples[i].Name = g.name
	}
	return samples
}

// =============================================================================
// Histogram
// =============================================================================

// Histogram tracks the distribution of observed values.
type Histogram struct {
	name    string
	help    string
	buckets []float64 // upper bounds, ending in +Inf
	set     *labelSet[histogramValue]
}

type histogramValue struct {
	counts []uint64
	sum    atomicFloat64
	count  uint64
}

func (h *Histogram) Name() string     { return h.name }
func (h *Histogram) Help() string     { return h.help }
func (h *Histogram) Type() MetricType { return MetricTypeHistogram }

// Observe records value in the series identified by values.
func (h *Histogram) Observe(value float64, values ...string) error {
	hv, err := h.set.get(values)
	if err != nil {
		return err
	}
	for i, bound := range h.buckets {
		if value <= bound {
			atomic.AddUint64(&hv.counts[i], 1)
			break
		}
	}
	hv.sum.Add(value)
	atomic.AddUint64(&hv.count, 1)
	return nil
}

func (h *Histogram) Collect() []Sample {
	var samples []Sample
	h.set.each(func(labels map[string]string, hv *histogramValue) {
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += atomic.LoadUint64(&hv.counts[i])
			bucket := make(map[string]string, len(labels)+1)
			for k, v := range labels {
				bucket[k] = v
			}
			bucket["le"] = formatFloat(bound)
			samples = append(samples, Sample{Name: h.name + "_bucket", Labels: bucket, Value: float64(cumulative)})
		}
		samples = append(samples,
			Sample{Name: h.name + "_sum", Labels: labels, Value: hv.sum.Load()},
			Sample{Name: h.name + "_count", Labels: labels, Value: float64(atomic.LoadUint64(&hv.count))},
		)
	})
	return samples
}

// DefaultBuckets are request duration buckets in seconds.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// =============================================================================
// Registry
// =============================================================================

// Registry holds registered metrics in registration order.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	names   map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter creates and registers a counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := &Counter{name: name, help: help, set: newLabelSet(name, labels, func() *atomicFloat64 { return &atomicFloat64{} })}
	r.register(c)
	return c
}

// NewGaugeFunc registers a gauge computed by collect on every scrape.
func (r *Registry) NewGaugeFunc(name, help string, collect func() []Sample) *GaugeFunc {
	g := &GaugeFunc{name: name, help: help, collect: collect}
	r.register(g)
	return g
}

// NewHistogram creates and registers a histogram with the given buckets.
func (r *Registry) NewHistogram(name, help string, buckets []float64, labels ...string) *Histogram {
	bounds := slices.Clone(buckets)
	sort.Float64s(bounds)
	if len(bounds) == 0 || !math.IsInf(bounds[len(bounds)-1], 1) {
		bounds = append(bounds, math.Inf(1))
	}
	h := &Histogram{name: name, help: help, buckets: bounds}
	h.set = newLabelSet(name, labels, func() *histogramValue {
		return &histogramValue{counts: make([]uint64, len(bounds))}
	})
	r.register(h)
	return h
}

// register panics on a duplicate name, since that produces invalid exposition output.
func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.names[m.Name()]; exists {
		panic(fmt.Sprintf("metrics: duplicate metric name %s", m.Name()))
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// WriteTo writes every metric with samples in the text exposition format.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	r.mu.RLock()
	metrics := slices.Clone(r.metrics)
	r.mu.RUnlock()

	cw := &countingWriter{w: w}
	for _, m := range metrics {
		samples := m.Collect()
		if len(samples) == 0 {
			continue
		}
		fmt.Fprintf(cw, "# HELP %s %s\n", m.Name(), escapeHelp(m.Help()))
		fmt.Fprintf(cw, "# TYPE %s %s\n", m.Name(), m.Type())
		for _, s := range samples {
			if len(s.Labels) == 0 {
				fmt.Fprintf(cw, "%s %s\n", s.Name, formatFloat(s.Value))
			} else {
				fmt.Fprintf(cw, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
			}
		}
	}
	return cw.n, cw.err
}

// Handler serves the registry over HTTP.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = r.WriteTo(w)
	})
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

// =============================================================================
// Text format
// =============================================================================

// formatLabels renders labels as key="value" pairs sorted by key.
func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf(`%s="%s"`, k, escapeLabelValue(labels[k]))
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}

func escapeHelp(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func escapeLabelValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}
