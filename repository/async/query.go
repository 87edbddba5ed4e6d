package async

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// Query adapts a blocking query into the non-blocking contract. Every call
// submits the blocking read to the dispatcher and returns its future
// immediately.
type Query[K cmp.Ordered, E repository.Entity[K]] struct {
	inner      repository.Query[K, E]
	dispatcher *Dispatcher
}

// NewQuery adapts inner onto dispatcher.
func NewQuery[K cmp.Ordered, E repository.Entity[K]](
	inner repository.Query[K, E],
	dispatcher *Dispatcher,
) (*Query[K, E], error) {

	if inner == nil {
		return nil, repository.ErrNilInner
	}

	if dispatcher == nil {
		return nil, ErrNilDispatcher
	}

	return &Query[K, E]{inner: inner, dispatcher: dispatcher}, nil
}

func (q *Query[K, E]) GetCount(ctx context.Context) *repository.Future[int] {
	return dispatch(q.dispatcher, func() (int, error) {
		return q.inner.GetCount(ctx)
	})
}

func (q *Query[K, E]) GetAll(ctx context.Context) *repository.Future[[]E] {
	return dispatch(q.dispatcher, func() ([]E, error) {
		return q.inner.GetAll(ctx)
	})
}

func (q *Query[K, E]) GetByID(ctx context.Context, id K) *repository.Future[E] {
	return dispatch(q.dispatcher, func() (E, error) {
		return q.inner.GetByID(ctx, id)
	})
}

func (q *Query[K, E]) TryGetByID(ctx context.Context, id K) *repository.Future[repository.Maybe[E]] {
	return dispatch(q.dispatcher, func() (repository.Maybe[E], error) {
		entity, found, err := q.inner.TryGetByID(ctx, id)
		return repository.Maybe[E]{Value: entity, Found: found}, err
	})
}

// BlockingQuery adapts a non-blocking query back into the blocking
// contract by waiting on each future. Together with Query it reproduces the
// wrapped backend exactly, error values included.
type BlockingQuery[K cmp.Ordered, E repository.Entity[K]] struct {
	inner repository.AsyncQuery[K, E]
}

// NewBlockingQuery adapts inner into the blocking contract.
func NewBlockingQuery[K cmp.Ordered, E repository.Entity[K]](inner repository.AsyncQuery[K, E]) (*BlockingQuery[K, E], error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &BlockingQuery[K, E]{inner: inner}, nil
}

func (q *BlockingQuery[K, E]) GetCount(ctx context.Context) (int, error) {
	return q.inner.GetCount(ctx).Wait()
}

func (q *BlockingQuery[K, E]) GetAll(ctx context.Context) ([]E, error) {
	return q.inner.GetAll(ctx).Wait()
}

func (q *BlockingQuery[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	return q.inner.GetByID(ctx, id).Wait()
}

func (q *BlockingQuery[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	maybe, err := q.inner.TryGetByID(ctx, id).Wait()
	return maybe.Value, maybe.Found, err
}
