package helper

import (
	"context"
	"maps"
	"sync"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// SpanRecord captures one span from start to finish.
type SpanRecord struct {
	Name        string
	StartAttrs  map[string]string
	FinishAttrs map[string]string
	Status      string
	SetStatuses []string
	SetAttrs    map[string]string
	Finished    bool
}

// SpanContextSpy captures updates made to a span while it is active.
type SpanContextSpy struct {
	mu       sync.Mutex
	statuses []string
	attrs    map[string]string
}

// SetStatus captures a status update on the active span.
func (s *SpanContextSpy) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statuses = append(s.statuses, status)
}

// AddAttribute captures an attribute added to the active span.
func (s *SpanContextSpy) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attrs == nil {
		s.attrs = make(map[string]string)
	}
	s.attrs[key] = value
}

func (s *SpanContextSpy) snapshot() ([]string, map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]string, len(s.statuses))
	copy(statuses, s.statuses)

	return statuses, maps.Clone(s.attrs)
}

// TracingCollectorSpy captures tracing calls for testing.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*spanEntry
}

type spanEntry struct {
	record  SpanRecord
	spanCtx *SpanContextSpy
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan captures a started span and hands out a spy span context.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, repository.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpanContextSpy{}
	s.spans = append(s.spans, &spanEntry{
		record: SpanRecord{
			Name:       name,
			StartAttrs: maps.Clone(attrs),
		},
		spanCtx: spanCtx,
	})

	return ctx, spanCtx
}

// FinishSpan captures the finish of a span previously handed out by StartSpan.
// Finishing an unknown span context is ignored.
func (s *TracingCollectorSpy) FinishSpan(spanCtx repository.SpanContext, status string, attrs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.spans {
		if entry.spanCtx == spanCtx {
			entry.record.Status = status
			entry.record.FinishAttrs = maps.Clone(attrs)
			entry.record.Finished = true

			return
		}
	}
}

// GetSpanCount returns the number of started spans.
func (s *TracingCollectorSpy) GetSpanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.spans)
}

// GetFinishedSpanCount returns the number of spans that were finished.
func (s *TracingCollectorSpy) GetFinishedSpanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, entry := range s.spans {
		if entry.record.Finished {
			count++
		}
	}

	return count
}

// GetSpanRecords returns a copy of all captured spans, including the status
// updates and attributes set through the span context while active.
func (s *TracingCollectorSpy) GetSpanRecords() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpanRecord, 0, len(s.spans))
	for _, entry := range s.spans {
		record := entry.record
		record.StartAttrs = maps.Clone(record.StartAttrs)
		record.FinishAttrs = maps.Clone(record.FinishAttrs)
		record.SetStatuses, record.SetAttrs = entry.spanCtx.snapshot()
		records = append(records, record)
	}

	return records
}

// Reset clears all captured spans.
func (s *TracingCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans = s.spans[:0]
}

// SpanRecordMatcher provides a fluent interface for checking captured spans.
type SpanRecordMatcher struct {
	records []SpanRecord
}

// HasSpanWithName starts a fluent chain over the captured spans with the
// given name.
func (s *TracingCollectorSpy) HasSpanWithName(name string) *SpanRecordMatcher {
	matcher := &SpanRecordMatcher{}
	for _, record := range s.GetSpanRecords() {
		if record.Name == name {
			matcher.records = append(matcher.records, record)
		}
	}

	return matcher
}

// WithStatus keeps the spans finished with the given status.
func (m *SpanRecordMatcher) WithStatus(status string) *SpanRecordMatcher {
	kept := make([]SpanRecord, 0, len(m.records))
	for _, record := range m.records {
		if record.Finished && record.Status == status {
			kept = append(kept, record)
		}
	}

	return &SpanRecordMatcher{records: kept}
}

// WithStartAttribute keeps the spans started with the given attribute.
func (m *SpanRecordMatcher) WithStartAttribute(key, value string) *SpanRecordMatcher {
	kept := make([]SpanRecord, 0, len(m.records))
	for _, record := range m.records {
		if record.StartAttrs[key] == value {
			kept = append(kept, record)
		}
	}

	return &SpanRecordMatcher{records: kept}
}

// WithFinishAttribute keeps the spans finished with the given attribute.
func (m *SpanRecordMatcher) WithFinishAttribute(key, value string) *SpanRecordMatcher {
	kept := make([]SpanRecord, 0, len(m.records))
	for _, record := range m.records {
		if record.FinishAttrs[key] == value {
			kept = append(kept, record)
		}
	}

	return &SpanRecordMatcher{records: kept}
}

// Assert returns true if at least one span matched all conditions in the
// fluent chain.
func (m *SpanRecordMatcher) Assert() bool {
	return len(m.records) > 0
}

// Compile-time checks to ensure the spies implement the tracing interfaces.
var (
	_ repository.TracingCollector = (*TracingCollectorSpy)(nil)
	_ repository.SpanContext      = (*SpanContextSpy)(nil)
)
