package repository

import (
	"cmp"
	"context"
)

// Maybe carries the outcome of a soft lookup: Found reports whether Value
// holds a stored entity. It keeps the non-blocking TryGetByID lossless, so
// adapting it back to the blocking form reproduces the original results.
type Maybe[E any] struct {
	Value E
	Found bool
}

// AsyncQuery is the non-blocking variant of Query. Every operation returns
// immediately with a Future that completes once the read has finished; the
// calling goroutine is never blocked on backend work.
//
// The outcome rules match Query operation by operation. TryGetByID delivers
// its entity and found flag together as a Maybe.
type AsyncQuery[K cmp.Ordered, E Entity[K]] interface {
	GetCount(ctx context.Context) *Future[int]
	GetAll(ctx context.Context) *Future[[]E]
	GetByID(ctx context.Context, id K) *Future[E]
	TryGetByID(ctx context.Context, id K) *Future[Maybe[E]]
}

// AsyncCommand is the non-blocking variant of Command. Every operation
// returns immediately with a Future that completes once the write has
// finished; the calling goroutine is never blocked on backend work.
//
// The outcome rules match Command operation by operation: operations without
// a result complete with Future[struct{}], Try operations deliver their
// bool result through the future.
type AsyncCommand[K cmp.Ordered, E Entity[K]] interface {
	Add(ctx context.Context, entity E) *Future[struct{}]
	AddOrUpdate(ctx context.Context, entity E) *Future[struct{}]
	Update(ctx context.Context, entity E) *Future[struct{}]
	Remove(ctx context.Context, entity E) *Future[struct{}]
	RemoveByID(ctx context.Context, id K) *Future[struct{}]
	TryAdd(ctx context.Context, entity E) *Future[bool]
	TryUpdate(ctx context.Context, entity E) *Future[bool]
	TryRemove(ctx context.Context, entity E) *Future[bool]
	TryRemoveByID(ctx context.Context, id K) *Future[bool]
}

// AsyncRepository combines AsyncQuery and AsyncCommand over the same backend.
type AsyncRepository[K cmp.Ordered, E Entity[K]] interface {
	AsyncQuery[K, E]
	AsyncCommand[K, E]
}

// AsyncUnitOfWork is the non-blocking variant of UnitOfWork.
type AsyncUnitOfWork interface {
	Commit(ctx context.Context) *Future[struct{}]
}
