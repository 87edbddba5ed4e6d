package postgresengine

import (
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// config collects the adjustable parts of a Store before the generic store
// is built, so options stay free of type parameters.
type config struct {
	tableName        string
	logger           repository.Logger
	metricsCollector repository.MetricsCollector
	tracingCollector repository.TracingCollector
	contextualLogger repository.ContextualLogger
}

func defaultConfig() config {
	return config{tableName: defaultTableName}
}

// Option defines a functional option for configuring a Store.
type Option func(*config) error

// WithTableName sets the table name for the Store.
func WithTableName(tableName string) Option {
	return func(c *config) error {
		if tableName == "" {
			return repository.ErrEmptyTableName
		}

		c.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Entity counts, durations, precondition failures (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger repository.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// The metrics collector will receive performance and operational metrics including
// query/exec durations, entity counts, precondition failures, and database errors.
func WithMetrics(collector repository.MetricsCollector) Option {
	return func(c *config) error {
		c.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// The tracing collector will receive distributed tracing information including
// span creation for query/exec operations, context propagation, and error tracking.
func WithTracing(collector repository.TracingCollector) Option {
	return func(c *config) error {
		c.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// The contextual logger will receive log messages with context information including
// automatic trace/span correlation when tracing is enabled, enabling unified observability.
func WithContextualLogger(logger repository.ContextualLogger) Option {
	return func(c *config) error {
		c.contextualLogger = logger
		return nil
	}
}
