package helper

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// DurationRecord captures one RecordDuration call.
type DurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// CounterRecord captures one IncrementCounter call.
type CounterRecord struct {
	Metric string
	Labels map[string]string
}

// ValueRecord captures one RecordValue call.
type ValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// MetricsCollectorSpy captures metrics calls for testing. It implements
// both the base and the contextual collector interface; contextual calls
// are recorded like base calls and counted separately.
type MetricsCollectorSpy struct {
	mu              sync.Mutex
	durations       []DurationRecord
	counters        []CounterRecord
	values          []ValueRecord
	contextualCalls int
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

// RecordDuration captures a duration metric.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, DurationRecord{
		Metric:   metric,
		Duration: duration,
		Labels:   maps.Clone(labels),
	})
}

// IncrementCounter captures a counter metric.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, CounterRecord{
		Metric: metric,
		Labels: maps.Clone(labels),
	})
}

// RecordValue captures a value metric.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, ValueRecord{
		Metric: metric,
		Value:  value,
		Labels: maps.Clone(labels),
	})
}

// RecordDurationContext captures a duration metric recorded with a context.
func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.countContextualCall()
	s.RecordDuration(metric, duration, labels)
}

// IncrementCounterContext captures a counter metric recorded with a context.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.countContextualCall()
	s.IncrementCounter(metric, labels)
}

// RecordValueContext captures a value metric recorded with a context.
func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.countContextualCall()
	s.RecordValue(metric, value, labels)
}

// GetDurationCount returns the number of captured duration records.
func (s *MetricsCollectorSpy) GetDurationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.durations)
}

// GetCounterCount returns the number of captured counter records.
func (s *MetricsCollectorSpy) GetCounterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.counters)
}

// GetValueCount returns the number of captured value records.
func (s *MetricsCollectorSpy) GetValueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.values)
}

// GetContextualCallCount returns how many calls came in through the
// contextual interface.
func (s *MetricsCollectorSpy) GetContextualCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.contextualCalls
}

// GetDurationRecords returns a copy of all captured duration records.
func (s *MetricsCollectorSpy) GetDurationRecords() []DurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]DurationRecord, len(s.durations))
	copy(records, s.durations)

	return records
}

// GetCounterRecords returns a copy of all captured counter records.
func (s *MetricsCollectorSpy) GetCounterRecords() []CounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]CounterRecord, len(s.counters))
	copy(records, s.counters)

	return records
}

// Reset clears all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = s.durations[:0]
	s.counters = s.counters[:0]
	s.values = s.values[:0]
	s.contextualCalls = 0
}

func (s *MetricsCollectorSpy) countContextualCall() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contextualCalls++
}

// MetricRecordMatcher provides a fluent interface for checking captured
// metric labels.
type MetricRecordMatcher struct {
	labels []map[string]string
}

// HasCounterRecordForMetric starts a fluent chain over the counter records
// captured for metric.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &MetricRecordMatcher{}
	for _, record := range s.counters {
		if record.Metric == metric {
			matcher.labels = append(matcher.labels, record.Labels)
		}
	}

	return matcher
}

// HasDurationRecordForMetric starts a fluent chain over the duration
// records captured for metric.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &MetricRecordMatcher{}
	for _, record := range s.durations {
		if record.Metric == metric {
			matcher.labels = append(matcher.labels, record.Labels)
		}
	}

	return matcher
}

// HasValueRecordForMetric starts a fluent chain over the value records
// captured for metric.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &MetricRecordMatcher{}
	for _, record := range s.values {
		if record.Metric == metric {
			matcher.labels = append(matcher.labels, record.Labels)
		}
	}

	return matcher
}

// WithOperation keeps the records whose operation label has the given value.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.withLabel("operation", operation)
}

// WithStatus keeps the records whose status label has the given value.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.withLabel("status", status)
}

// WithErrorType keeps the records whose error_type label has the given value.
func (m *MetricRecordMatcher) WithErrorType(errorType string) *MetricRecordMatcher {
	return m.withLabel("error_type", errorType)
}

// WithPrecondition keeps the records whose precondition label has the given value.
func (m *MetricRecordMatcher) WithPrecondition(precondition string) *MetricRecordMatcher {
	return m.withLabel("precondition", precondition)
}

func (m *MetricRecordMatcher) withLabel(key, value string) *MetricRecordMatcher {
	kept := make([]map[string]string, 0, len(m.labels))
	for _, labels := range m.labels {
		if labels[key] == value {
			kept = append(kept, labels)
		}
	}

	return &MetricRecordMatcher{labels: kept}
}

// Assert returns true if at least one record matched all conditions in the
// fluent chain.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.labels) > 0
}

// Compile-time checks to ensure MetricsCollectorSpy implements both collector interfaces.
var (
	_ repository.MetricsCollector           = (*MetricsCollectorSpy)(nil)
	_ repository.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
)
