package decorator

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// Query is the forwarding base for repository.Query decorators. It delegates
// every read to the wrapped instance unchanged.
type Query[K cmp.Ordered, E repository.Entity[K]] struct {
	inner repository.Query[K, E]
}

// NewQuery wraps inner in a forwarding base.
func NewQuery[K cmp.Ordered, E repository.Entity[K]](inner repository.Query[K, E]) (*Query[K, E], error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &Query[K, E]{inner: inner}, nil
}

// Unwrap returns the wrapped instance.
func (q *Query[K, E]) Unwrap() repository.Query[K, E] {
	return q.inner
}

func (q *Query[K, E]) GetCount(ctx context.Context) (int, error) {
	return q.inner.GetCount(ctx)
}

func (q *Query[K, E]) GetAll(ctx context.Context) ([]E, error) {
	return q.inner.GetAll(ctx)
}

func (q *Query[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	return q.inner.GetByID(ctx, id)
}

func (q *Query[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	return q.inner.TryGetByID(ctx, id)
}

// AsyncQuery is the forwarding base for repository.AsyncQuery decorators. It
// delegates every read to the wrapped instance unchanged, futures included.
type AsyncQuery[K cmp.Ordered, E repository.Entity[K]] struct {
	inner repository.AsyncQuery[K, E]
}

// NewAsyncQuery wraps inner in a forwarding base.
func NewAsyncQuery[K cmp.Ordered, E repository.Entity[K]](inner repository.AsyncQuery[K, E]) (*AsyncQuery[K, E], error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &AsyncQuery[K, E]{inner: inner}, nil
}

// Unwrap returns the wrapped instance.
func (q *AsyncQuery[K, E]) Unwrap() repository.AsyncQuery[K, E] {
	return q.inner
}

func (q *AsyncQuery[K, E]) GetCount(ctx context.Context) *repository.Future[int] {
	return q.inner.GetCount(ctx)
}

func (q *AsyncQuery[K, E]) GetAll(ctx context.Context) *repository.Future[[]E] {
	return q.inner.GetAll(ctx)
}

func (q *AsyncQuery[K, E]) GetByID(ctx context.Context, id K) *repository.Future[E] {
	return q.inner.GetByID(ctx, id)
}

func (q *AsyncQuery[K, E]) TryGetByID(ctx context.Context, id K) *repository.Future[repository.Maybe[E]] {
	return q.inner.TryGetByID(ctx, id)
}
