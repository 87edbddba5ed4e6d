// Package promadapters provides Prometheus adapters for the repository observability interfaces.
// These adapters enable seamless integration with Prometheus for users who want
// plug-and-play metrics without implementing the interfaces themselves.
package promadapters

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// MetricsCollector implements repository.MetricsCollector using the Prometheus client library.
// It automatically maps the repository metrics interface to Prometheus collectors:
//   - RecordDuration -> HistogramVec (for measuring operation durations)
//   - IncrementCounter -> CounterVec (for counting operations and errors)
//   - RecordValue -> GaugeVec (for current values like entities loaded)
//
// Prometheus fixes the label names of a collector at creation time, so the label
// set of the first call for a metric name determines the label names for that
// metric. Later calls with a different label set are dropped silently.
type MetricsCollector struct {
	registerer prometheus.Registerer
	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// NewMetricsCollector creates a new Prometheus metrics collector.
// Collectors are created on-demand as metrics are recorded and registered with
// the provided registerer. A nil registerer falls back to prometheus.DefaultRegisterer.
func NewMetricsCollector(registerer prometheus.Registerer) *MetricsCollector {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &MetricsCollector{
		registerer: registerer,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

// RecordDuration records a duration measurement using a Prometheus histogram.
// Histograms are ideal for measuring operation durations as they provide
// percentiles, averages, and distribution information.
func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	histogram := m.getOrCreateHistogram(metricName, labelNames(labels))
	if histogram == nil {
		return
	}

	observer, err := histogram.GetMetricWith(labels)
	if err != nil {
		// Label names differ from the first use of this metric
		return
	}

	// Record duration in seconds (Prometheus convention)
	observer.Observe(duration.Seconds())
}

// RecordDurationContext records a duration measurement with context.
// Prometheus has no per-observation context, so this delegates to RecordDuration.
func (m *MetricsCollector) RecordDurationContext(_ context.Context, metricName string, duration time.Duration, labels map[string]string) {
	m.RecordDuration(metricName, duration, labels)
}

// IncrementCounter increments a counter using a Prometheus counter.
// Counters are monotonically increasing and ideal for counting operations,
// errors, and other event occurrences.
func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	counter := m.getOrCreateCounter(metricName, labelNames(labels))
	if counter == nil {
		return
	}

	child, err := counter.GetMetricWith(labels)
	if err != nil {
		// Label names differ from the first use of this metric
		return
	}

	child.Inc()
}

// IncrementCounterContext increments a counter with context.
// Prometheus has no per-observation context, so this delegates to IncrementCounter.
func (m *MetricsCollector) IncrementCounterContext(_ context.Context, metricName string, labels map[string]string) {
	m.IncrementCounter(metricName, labels)
}

// RecordValue records a float64 value using a Prometheus gauge.
// Gauges represent current values that can go up or down, such as
// the number of entities a query returned or current queue size.
func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	gauge := m.getOrCreateGauge(metricName, labelNames(labels))
	if gauge == nil {
		return
	}

	child, err := gauge.GetMetricWith(labels)
	if err != nil {
		// Label names differ from the first use of this metric
		return
	}

	child.Set(value)
}

// RecordValueContext records a float64 value with context.
// Prometheus has no per-observation context, so this delegates to RecordValue.
func (m *MetricsCollector) RecordValueContext(_ context.Context, metricName string, value float64, labels map[string]string) {
	m.RecordValue(metricName, value, labels)
}

// getOrCreateHistogram gets an existing histogram or creates and registers a new one
// for the given metric name.
func (m *MetricsCollector) getOrCreateHistogram(name string, names []string) *prometheus.HistogramVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, exists := m.histograms[name]; exists {
		return histogram
	}

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    "Repository operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		names,
	)

	if registered, ok := register(m.registerer, histogram); ok {
		histogram = registered
	} else {
		return nil
	}

	m.histograms[name] = histogram
	return histogram
}

// getOrCreateCounter gets an existing counter or creates and registers a new one
// for the given metric name.
func (m *MetricsCollector) getOrCreateCounter(name string, names []string) *prometheus.CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, exists := m.counters[name]; exists {
		return counter
	}

	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: "Repository operation counter",
		},
		names,
	)

	if registered, ok := register(m.registerer, counter); ok {
		counter = registered
	} else {
		return nil
	}

	m.counters[name] = counter
	return counter
}

// getOrCreateGauge gets an existing gauge or creates and registers a new one
// for the given metric name.
func (m *MetricsCollector) getOrCreateGauge(name string, names []string) *prometheus.GaugeVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gauge, exists := m.gauges[name]; exists {
		return gauge
	}

	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: "Repository current value",
		},
		names,
	)

	if registered, ok := register(m.registerer, gauge); ok {
		gauge = registered
	} else {
		return nil
	}

	m.gauges[name] = gauge
	return gauge
}

// register registers a collector, reusing the already registered instance when
// another collector claimed the metric name first (for example a second
// MetricsCollector sharing the same registry).
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, bool) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, true
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
			return existing, true
		}
	}

	var zero C
	return zero, false
}

// labelNames returns the label names of a label set in sorted order, so equal
// label sets always produce the same collector shape.
func labelNames(labels map[string]string) []string {
	return slices.Sorted(maps.Keys(labels))
}

// Ensure MetricsCollector implements repository.MetricsCollector.
var _ repository.MetricsCollector = (*MetricsCollector)(nil)

// Ensure MetricsCollector implements repository.ContextualMetricsCollector.
var _ repository.ContextualMetricsCollector = (*MetricsCollector)(nil)
