package repository

import (
	"cmp"
	"context"
)

// Entity constrains the values managed through the contracts in this module.
// An entity reports the identity it is stored under; the identity type must
// support equality and a total order (cmp.Ordered) so backends can look
// entities up and list them deterministically.
type Entity[K cmp.Ordered] interface {
	Identity() K
}

// Query is the blocking read contract over entities of type E keyed by K.
//
// Lookup operations come in a strict and a soft form: GetByID treats absence
// as a failure and reports it through ErrEntityNotFound, while TryGetByID
// treats absence as a normal outcome and reports it through its bool result.
type Query[K cmp.Ordered, E Entity[K]] interface {
	// GetCount reports the number of stored entities.
	GetCount(ctx context.Context) (int, error)

	// GetAll returns every stored entity, ordered by identity.
	GetAll(ctx context.Context) ([]E, error)

	// GetByID returns the entity stored under id.
	// It reports ErrEntityNotFound when no such entity is stored.
	GetByID(ctx context.Context, id K) (E, error)

	// TryGetByID returns the entity stored under id and true, or the zero
	// value and false when no such entity is stored.
	TryGetByID(ctx context.Context, id K) (E, bool, error)
}

// Command is the blocking write contract over entities of type E keyed by K.
//
// Every strict operation has a Try counterpart that reports the precondition
// outcome through its bool result instead of ErrEntityAlreadyExists or
// ErrEntityNotFound; errors from a Try operation always mean the backend
// itself failed.
type Command[K cmp.Ordered, E Entity[K]] interface {
	// Add stores a new entity. It reports ErrEntityAlreadyExists when an
	// entity with the same identity is already stored.
	Add(ctx context.Context, entity E) error

	// AddOrUpdate stores entity, replacing any stored entity with the same
	// identity. It never fails on a precondition.
	AddOrUpdate(ctx context.Context, entity E) error

	// Update replaces the stored entity with the same identity as entity.
	// It reports ErrEntityNotFound when no such entity is stored.
	Update(ctx context.Context, entity E) error

	// Remove deletes the stored entity with the same identity as entity.
	// It reports ErrEntityNotFound when no such entity is stored.
	Remove(ctx context.Context, entity E) error

	// RemoveByID deletes the entity stored under id.
	// It reports ErrEntityNotFound when no such entity is stored.
	RemoveByID(ctx context.Context, id K) error

	// TryAdd stores a new entity and reports whether it was stored; false
	// means an entity with the same identity was already stored.
	TryAdd(ctx context.Context, entity E) (bool, error)

	// TryUpdate replaces the stored entity with the same identity as entity
	// and reports whether it did; false means no such entity was stored.
	TryUpdate(ctx context.Context, entity E) (bool, error)

	// TryRemove deletes the stored entity with the same identity as entity
	// and reports whether it did; false means no such entity was stored.
	TryRemove(ctx context.Context, entity E) (bool, error)

	// TryRemoveByID deletes the entity stored under id and reports whether
	// it did; false means no such entity was stored.
	TryRemoveByID(ctx context.Context, id K) (bool, error)
}

// Repository combines Query and Command over the same backend.
type Repository[K cmp.Ordered, E Entity[K]] interface {
	Query[K, E]
	Command[K, E]
}

// UnitOfWork tracks pending changes and applies them as one atomic step.
type UnitOfWork interface {
	// Commit applies every pending change. When Commit fails, no pending
	// change has been applied.
	Commit(ctx context.Context) error
}
