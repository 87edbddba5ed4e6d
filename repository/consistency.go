package repository

import "context"

// ConsistencyLevel defines the consistency requirements for read operations
// against engines with read replicas.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database to ensure
	// read-after-write consistency. This is the default so callers that
	// read, check, and write see their own writes immediately.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from replica databases, trading
	// consistency for performance. Suitable for pure query traffic that can
	// tolerate slightly stale data in exchange for a reduced load on the
	// primary database.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "repository.consistency_level"

// WithStrongConsistency returns a context that signals read operations
// should use the primary database for strong consistency guarantees.
//
// This is typically used by callers that perform read-check-write patterns
// and need to ensure they see the most recent state.
//
// Example usage:
//
//	ctx = repository.WithStrongConsistency(ctx)
//	customer, err := repo.GetByID(ctx, id)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals read operations may
// use replica databases for eventual consistency, trading consistency for
// performance.
//
// This is typically used by pure query callers that can tolerate slightly
// stale data in exchange for better performance and reduced primary
// database load.
//
// Example usage:
//
//	ctx = repository.WithEventualConsistency(ctx)
//	all, err := repo.GetAll(ctx)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If no consistency level is set, it returns StrongConsistency as the safe
// default.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
