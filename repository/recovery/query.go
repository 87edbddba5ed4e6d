package recovery

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/decorator"
)

// Query recovers one declared kind of read failure. A recovered lookup
// reports absence exactly as an empty backend would: GetByID through
// repository.ErrEntityNotFound, TryGetByID through its found flag.
type Query[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.Query[K, E]
	guard guard
}

// NewQuery wraps inner with recovery for failures matching kind, gated by
// predicate.
func NewQuery[K cmp.Ordered, E repository.Entity[K]](
	inner repository.Query[K, E],
	kind error,
	predicate Predicate,
) (*Query[K, E], error) {

	base, err := decorator.NewQuery(inner)
	if err != nil {
		return nil, err
	}

	g, err := newGuard(kind, predicate)
	if err != nil {
		return nil, err
	}

	return &Query[K, E]{Query: base, guard: g}, nil
}

func (q *Query[K, E]) GetCount(ctx context.Context) (int, error) {
	count, err := q.Query.GetCount(ctx)
	if q.guard.recovers(err) {
		return 0, nil
	}

	return count, err
}

func (q *Query[K, E]) GetAll(ctx context.Context) ([]E, error) {
	all, err := q.Query.GetAll(ctx)
	if q.guard.recovers(err) {
		return nil, nil
	}

	return all, err
}

func (q *Query[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	entity, err := q.Query.GetByID(ctx, id)
	if q.guard.recovers(err) {
		var zero E
		return zero, repository.ErrEntityNotFound
	}

	return entity, err
}

func (q *Query[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	entity, found, err := q.Query.TryGetByID(ctx, id)
	if q.guard.recovers(err) {
		var zero E
		return zero, false, nil
	}

	return entity, found, err
}

// AsyncQuery is the non-blocking variant of Query, applying the same rules
// to each inner future's outcome.
type AsyncQuery[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.AsyncQuery[K, E]
	guard guard
}

// NewAsyncQuery wraps inner with recovery for failures matching kind, gated
// by predicate.
func NewAsyncQuery[K cmp.Ordered, E repository.Entity[K]](
	inner repository.AsyncQuery[K, E],
	kind error,
	predicate Predicate,
) (*AsyncQuery[K, E], error) {

	base, err := decorator.NewAsyncQuery(inner)
	if err != nil {
		return nil, err
	}

	g, err := newGuard(kind, predicate)
	if err != nil {
		return nil, err
	}

	return &AsyncQuery[K, E]{AsyncQuery: base, guard: g}, nil
}

func (q *AsyncQuery[K, E]) GetCount(ctx context.Context) *repository.Future[int] {
	return deriveFuture(q.AsyncQuery.GetCount(ctx), q.guard, func() (int, error) {
		return 0, nil
	})
}

func (q *AsyncQuery[K, E]) GetAll(ctx context.Context) *repository.Future[[]E] {
	return deriveFuture(q.AsyncQuery.GetAll(ctx), q.guard, func() ([]E, error) {
		return nil, nil
	})
}

func (q *AsyncQuery[K, E]) GetByID(ctx context.Context, id K) *repository.Future[E] {
	return deriveFuture(q.AsyncQuery.GetByID(ctx, id), q.guard, func() (E, error) {
		var zero E
		return zero, repository.ErrEntityNotFound
	})
}

func (q *AsyncQuery[K, E]) TryGetByID(ctx context.Context, id K) *repository.Future[repository.Maybe[E]] {
	return deriveFuture(q.AsyncQuery.TryGetByID(ctx, id), q.guard, func() (repository.Maybe[E], error) {
		return repository.Maybe[E]{}, nil
	})
}
