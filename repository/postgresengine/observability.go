package postgresengine

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

const (
	metricQueryDuration        = "repository_query_duration_seconds"
	metricExecDuration         = "repository_exec_duration_seconds"
	metricEntitiesLoaded       = "repository_entities_loaded"
	metricEntitiesAffected     = "repository_entities_affected"
	metricDatabaseErrors       = "repository_database_errors"
	metricLookupMisses         = "repository_lookup_misses"
	metricPreconditionFailures = "repository_precondition_failures"

	spanNameQuery = "repository.query"
	spanNameExec  = "repository.exec"

	spanAttrOperation    = "operation"
	spanAttrStatus       = "status"
	spanAttrErrorType    = "error_type"
	spanAttrEntityCount  = "entity_count"
	spanAttrRowsAffected = "rows_affected"
	spanAttrDurationMS   = "duration_ms"
	spanAttrPrecondition = "precondition"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeBuildQuery   = "build_query_failed"
	errorTypeQuery        = "query_failed"
	errorTypeExec         = "exec_failed"
	errorTypeScanRow      = "scan_row_failed"
	errorTypeDecode       = "decode_payload_failed"
	errorTypeEncode       = "encode_payload_failed"
	errorTypeRowsAffected = "rows_affected_failed"
	errorTypeNotFound     = "entity_not_found"
	errorTypePrecondition = "precondition_failed"

	preconditionExists   = "entity_exists"
	preconditionNotFound = "entity_not_found"
)

// === Observer Pattern ===
// These observers simplify observability by encapsulating the logging,
// metrics, and tracing for one operation outcome behind a single call.

// readObserver tracks one read operation from span start to outcome.
type readObserver[K cmp.Ordered, E repository.Entity[K]] struct {
	s         *Store[K, E]
	ctx       context.Context
	operation string
	span      repository.SpanContext
	duration  time.Duration
}

// writeObserver tracks one write operation from span start to outcome.
type writeObserver[K cmp.Ordered, E repository.Entity[K]] struct {
	s         *Store[K, E]
	ctx       context.Context
	operation string
	span      repository.SpanContext
	duration  time.Duration
}

// startReadObservation creates a new observer for a read operation and
// returns the context carrying its tracing span.
func (s *Store[K, E]) startReadObservation(ctx context.Context, operation string) (*readObserver[K, E], context.Context) {
	newCtx, span := s.startTraceSpan(ctx, spanNameQuery, map[string]string{spanAttrOperation: operation})

	return &readObserver[K, E]{s: s, ctx: newCtx, operation: operation, span: span}, newCtx
}

// startWriteObservation creates a new observer for a write operation and
// returns the context carrying its tracing span.
func (s *Store[K, E]) startWriteObservation(ctx context.Context, operation string) (*writeObserver[K, E], context.Context) {
	newCtx, span := s.startTraceSpan(ctx, spanNameExec, map[string]string{spanAttrOperation: operation})

	return &writeObserver[K, E]{s: s, ctx: newCtx, operation: operation, span: span}, newCtx
}

// recordSuccess records the outcome of a successful read operation.
func (o *readObserver[K, E]) recordSuccess(entityCount int) {
	o.s.logOperation(o.ctx, logMsgQueryCompleted,
		logAttrOperation, o.operation,
		logAttrEntityCount, entityCount,
		logAttrDurationMS, o.s.toMilliseconds(o.duration))

	o.s.recordDurationMetricsContext(o.ctx, metricQueryDuration, o.duration, o.operation, statusSuccess)
	o.s.recordValueMetricsContext(o.ctx, metricEntitiesLoaded, float64(entityCount), o.operation, statusSuccess)

	o.s.finishSpanSuccess(o.span, map[string]string{
		spanAttrEntityCount: fmt.Sprintf("%d", entityCount),
	}, o.duration)
}

// recordMiss records a lookup that found nothing where absence is a normal
// outcome of the operation.
func (o *readObserver[K, E]) recordMiss() {
	o.s.logOperation(o.ctx, logMsgEntityNotFound,
		logAttrOperation, o.operation,
		logAttrDurationMS, o.s.toMilliseconds(o.duration))

	o.s.recordDurationMetricsContext(o.ctx, metricQueryDuration, o.duration, o.operation, statusSuccess)
	o.s.recordLookupMissMetrics(o.ctx, o.operation)

	o.s.finishSpanSuccess(o.span, map[string]string{spanAttrEntityCount: "0"}, o.duration)
}

// recordStrictMiss records a lookup that found nothing where absence
// surfaces as an error to the caller.
func (o *readObserver[K, E]) recordStrictMiss() {
	o.s.logOperation(o.ctx, logMsgEntityNotFound,
		logAttrOperation, o.operation,
		logAttrDurationMS, o.s.toMilliseconds(o.duration))

	o.s.recordDurationMetricsContext(o.ctx, metricQueryDuration, o.duration, o.operation, statusError)
	o.s.recordLookupMissMetrics(o.ctx, o.operation)

	o.s.finishSpanError(o.span, errorTypeNotFound, nil, o.duration)
}

// recordError records a failed read operation.
func (o *readObserver[K, E]) recordError(errorType string) {
	o.s.recordDurationMetricsContext(o.ctx, metricQueryDuration, o.duration, o.operation, statusError)
	o.s.recordErrorMetricsContext(o.ctx, o.operation, errorType)

	o.s.finishSpanError(o.span, errorType, nil, o.duration)
}

// recordSuccess records the outcome of a successful write operation.
func (o *writeObserver[K, E]) recordSuccess(rowsAffected rowsAffectedInt64) {
	o.s.logOperation(o.ctx, logMsgWriteCompleted,
		logAttrOperation, o.operation,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, o.s.toMilliseconds(o.duration))

	o.s.recordDurationMetricsContext(o.ctx, metricExecDuration, o.duration, o.operation, statusSuccess)
	o.s.recordValueMetricsContext(o.ctx, metricEntitiesAffected, float64(rowsAffected), o.operation, statusSuccess)

	o.s.finishSpanSuccess(o.span, map[string]string{
		spanAttrRowsAffected: fmt.Sprintf("%d", rowsAffected),
	}, o.duration)
}

// recordPreconditionFailure records a write whose guarded precondition was
// not met, which surfaces as an error to the caller.
func (o *writeObserver[K, E]) recordPreconditionFailure(precondition string) {
	o.s.logOperation(o.ctx, logMsgPreconditionFailed,
		logAttrOperation, o.operation,
		logAttrPrecondition, precondition)

	o.s.recordDurationMetricsContext(o.ctx, metricExecDuration, o.duration, o.operation, statusError)
	o.s.recordPreconditionFailureMetrics(o.ctx, o.operation, precondition)

	o.s.finishSpanError(o.span, errorTypePrecondition, map[string]string{
		spanAttrPrecondition: precondition,
	}, o.duration)
}

// recordError records a failed write operation.
func (o *writeObserver[K, E]) recordError(errorType string) {
	o.s.recordDurationMetricsContext(o.ctx, metricExecDuration, o.duration, o.operation, statusError)
	o.s.recordErrorMetricsContext(o.ctx, o.operation, errorType)

	o.s.finishSpanError(o.span, errorType, nil, o.duration)
}

// === Tracing Helpers ===

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (s *Store[K, E]) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, repository.SpanContext) {

	if s.tracingCollector != nil {
		return s.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishSpanSuccess finishes a span for a successful operation.
func (s *Store[K, E]) finishSpanSuccess(span repository.SpanContext, attrs map[string]string, duration time.Duration) {
	if span != nil {
		span.SetStatus(statusSuccess)
		for key, value := range attrs {
			span.AddAttribute(key, value)
		}
		span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6))
	}

	s.finishTraceSpan(span, statusSuccess, attrs)
}

// finishSpanError finishes a span with error details.
func (s *Store[K, E]) finishSpanError(
	span repository.SpanContext,
	errorType string,
	attrs map[string]string,
	duration time.Duration,
) {

	if span != nil {
		span.SetStatus(statusError)
		span.AddAttribute(spanAttrErrorType, errorType)
		for key, value := range attrs {
			span.AddAttribute(key, value)
		}

		if duration > 0 {
			span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6))
		}
	}

	finishAttrs := map[string]string{spanAttrErrorType: errorType}
	for key, value := range attrs {
		finishAttrs[key] = value
	}

	s.finishTraceSpan(span, statusError, finishAttrs)
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (s *Store[K, E]) finishTraceSpan(span repository.SpanContext, status string, attrs map[string]string) {
	if s.tracingCollector != nil && span != nil {
		s.tracingCollector.FinishSpan(span, status, attrs)
	}
}

// === Metrics Helpers ===

// recordDurationMetricsContext records duration metrics with context if the collector supports it.
func (s *Store[K, E]) recordDurationMetricsContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {

	if s.metricsCollector != nil {
		labels := map[string]string{
			spanAttrOperation: operation,
			spanAttrStatus:    status,
		}

		// Use context-aware method if available
		if contextualCollector, ok := s.metricsCollector.(repository.ContextualMetricsCollector); ok {
			contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		} else {
			s.metricsCollector.RecordDuration(metricName, duration, labels)
		}
	}
}

// recordValueMetricsContext records value metrics with context if the collector supports it.
func (s *Store[K, E]) recordValueMetricsContext(
	ctx context.Context,
	metricName string,
	value float64,
	operation, status string,
) {

	if s.metricsCollector != nil {
		labels := map[string]string{
			spanAttrOperation: operation,
			spanAttrStatus:    status,
		}

		// Use context-aware method if available
		if contextualCollector, ok := s.metricsCollector.(repository.ContextualMetricsCollector); ok {
			contextualCollector.RecordValueContext(ctx, metricName, value, labels)
		} else {
			s.metricsCollector.RecordValue(metricName, value, labels)
		}
	}
}

// recordErrorMetricsContext records error metrics with context if the collector supports it.
func (s *Store[K, E]) recordErrorMetricsContext(ctx context.Context, operation, errorType string) {
	if s.metricsCollector != nil {
		labels := map[string]string{
			spanAttrOperation: operation,
			spanAttrStatus:    statusError,
			spanAttrErrorType: errorType,
		}

		// Use context-aware method if available
		if contextualCollector, ok := s.metricsCollector.(repository.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		} else {
			s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
		}
	}
}

// recordLookupMissMetrics counts lookups that found no entity.
func (s *Store[K, E]) recordLookupMissMetrics(ctx context.Context, operation string) {
	if s.metricsCollector != nil {
		labels := map[string]string{
			spanAttrOperation: operation,
		}

		// Use context-aware method if available
		if contextualCollector, ok := s.metricsCollector.(repository.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, metricLookupMisses, labels)
		} else {
			s.metricsCollector.IncrementCounter(metricLookupMisses, labels)
		}
	}
}

// recordPreconditionFailureMetrics counts guarded writes whose precondition was not met.
func (s *Store[K, E]) recordPreconditionFailureMetrics(ctx context.Context, operation, precondition string) {
	if s.metricsCollector != nil {
		labels := map[string]string{
			spanAttrOperation:    operation,
			spanAttrPrecondition: precondition,
		}

		// Use context-aware method if available
		if contextualCollector, ok := s.metricsCollector.(repository.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, metricPreconditionFailures, labels)
		} else {
			s.metricsCollector.IncrementCounter(metricPreconditionFailures, labels)
		}
	}
}

// === Logging Helpers ===
// Each helper prefers the contextual logger for automatic trace correlation
// and falls back to the plain logger.

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (s *Store[K, E]) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	operation string,
	duration time.Duration,
) {

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation,
			logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+operation,
			logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s *Store[K, E]) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (s *Store[K, E]) logWarn(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (s *Store[K, E]) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Store[K, E]) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
