package recovery

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/decorator"
)

// Repository recovers one declared kind of failure across the full
// repository contract, combining the Query and Command rules.
type Repository[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.Repository[K, E]
	guard guard
}

// NewRepository wraps inner with recovery for failures matching kind, gated
// by predicate.
func NewRepository[K cmp.Ordered, E repository.Entity[K]](
	inner repository.Repository[K, E],
	kind error,
	predicate Predicate,
) (*Repository[K, E], error) {

	base, err := decorator.NewRepository(inner)
	if err != nil {
		return nil, err
	}

	g, err := newGuard(kind, predicate)
	if err != nil {
		return nil, err
	}

	return &Repository[K, E]{Repository: base, guard: g}, nil
}

func (r *Repository[K, E]) GetCount(ctx context.Context) (int, error) {
	count, err := r.Repository.GetCount(ctx)
	if r.guard.recovers(err) {
		return 0, nil
	}

	return count, err
}

func (r *Repository[K, E]) GetAll(ctx context.Context) ([]E, error) {
	all, err := r.Repository.GetAll(ctx)
	if r.guard.recovers(err) {
		return nil, nil
	}

	return all, err
}

func (r *Repository[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	entity, err := r.Repository.GetByID(ctx, id)
	if r.guard.recovers(err) {
		var zero E
		return zero, repository.ErrEntityNotFound
	}

	return entity, err
}

func (r *Repository[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	entity, found, err := r.Repository.TryGetByID(ctx, id)
	if r.guard.recovers(err) {
		var zero E
		return zero, false, nil
	}

	return entity, found, err
}

func (r *Repository[K, E]) Add(ctx context.Context, entity E) error {
	return r.guard.recoverVoid(r.Repository.Add(ctx, entity))
}

func (r *Repository[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	return r.guard.recoverVoid(r.Repository.AddOrUpdate(ctx, entity))
}

func (r *Repository[K, E]) Update(ctx context.Context, entity E) error {
	return r.guard.recoverVoid(r.Repository.Update(ctx, entity))
}

func (r *Repository[K, E]) Remove(ctx context.Context, entity E) error {
	return r.guard.recoverVoid(r.Repository.Remove(ctx, entity))
}

func (r *Repository[K, E]) RemoveByID(ctx context.Context, id K) error {
	return r.guard.recoverVoid(r.Repository.RemoveByID(ctx, id))
}

func (r *Repository[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return r.guard.recoverTry(r.Repository.TryAdd(ctx, entity))
}

func (r *Repository[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return r.guard.recoverTry(r.Repository.TryUpdate(ctx, entity))
}

func (r *Repository[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return r.guard.recoverTry(r.Repository.TryRemove(ctx, entity))
}

func (r *Repository[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return r.guard.recoverTry(r.Repository.TryRemoveByID(ctx, id))
}

// AsyncRepository is the non-blocking variant of Repository, applying the
// same rules to each inner future's outcome.
type AsyncRepository[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.AsyncRepository[K, E]
	guard guard
}

// NewAsyncRepository wraps inner with recovery for failures matching kind,
// gated by predicate.
func NewAsyncRepository[K cmp.Ordered, E repository.Entity[K]](
	inner repository.AsyncRepository[K, E],
	kind error,
	predicate Predicate,
) (*AsyncRepository[K, E], error) {

	base, err := decorator.NewAsyncRepository(inner)
	if err != nil {
		return nil, err
	}

	g, err := newGuard(kind, predicate)
	if err != nil {
		return nil, err
	}

	return &AsyncRepository[K, E]{AsyncRepository: base, guard: g}, nil
}

func (r *AsyncRepository[K, E]) GetCount(ctx context.Context) *repository.Future[int] {
	return deriveFuture(r.AsyncRepository.GetCount(ctx), r.guard, func() (int, error) {
		return 0, nil
	})
}

func (r *AsyncRepository[K, E]) GetAll(ctx context.Context) *repository.Future[[]E] {
	return deriveFuture(r.AsyncRepository.GetAll(ctx), r.guard, func() ([]E, error) {
		return nil, nil
	})
}

func (r *AsyncRepository[K, E]) GetByID(ctx context.Context, id K) *repository.Future[E] {
	return deriveFuture(r.AsyncRepository.GetByID(ctx, id), r.guard, func() (E, error) {
		var zero E
		return zero, repository.ErrEntityNotFound
	})
}

func (r *AsyncRepository[K, E]) TryGetByID(ctx context.Context, id K) *repository.Future[repository.Maybe[E]] {
	return deriveFuture(r.AsyncRepository.TryGetByID(ctx, id), r.guard, func() (repository.Maybe[E], error) {
		return repository.Maybe[E]{}, nil
	})
}

func (r *AsyncRepository[K, E]) Add(ctx context.Context, entity E) *repository.Future[struct{}] {
	return deriveFuture(r.AsyncRepository.Add(ctx, entity), r.guard, recoveredVoid)
}

func (r *AsyncRepository[K, E]) AddOrUpdate(ctx context.Context, entity E) *repository.Future[struct{}] {
	return deriveFuture(r.AsyncRepository.AddOrUpdate(ctx, entity), r.guard, recoveredVoid)
}

func (r *AsyncRepository[K, E]) Update(ctx context.Context, entity E) *repository.Future[struct{}] {
	return deriveFuture(r.AsyncRepository.Update(ctx, entity), r.guard, recoveredVoid)
}

func (r *AsyncRepository[K, E]) Remove(ctx context.Context, entity E) *repository.Future[struct{}] {
	return deriveFuture(r.AsyncRepository.Remove(ctx, entity), r.guard, recoveredVoid)
}

func (r *AsyncRepository[K, E]) RemoveByID(ctx context.Context, id K) *repository.Future[struct{}] {
	return deriveFuture(r.AsyncRepository.RemoveByID(ctx, id), r.guard, recoveredVoid)
}

func (r *AsyncRepository[K, E]) TryAdd(ctx context.Context, entity E) *repository.Future[bool] {
	return deriveFuture(r.AsyncRepository.TryAdd(ctx, entity), r.guard, recoveredTry)
}

func (r *AsyncRepository[K, E]) TryUpdate(ctx context.Context, entity E) *repository.Future[bool] {
	return deriveFuture(r.AsyncRepository.TryUpdate(ctx, entity), r.guard, recoveredTry)
}

func (r *AsyncRepository[K, E]) TryRemove(ctx context.Context, entity E) *repository.Future[bool] {
	return deriveFuture(r.AsyncRepository.TryRemove(ctx, entity), r.guard, recoveredTry)
}

func (r *AsyncRepository[K, E]) TryRemoveByID(ctx context.Context, id K) *repository.Future[bool] {
	return deriveFuture(r.AsyncRepository.TryRemoveByID(ctx, id), r.guard, recoveredTry)
}

// probe pins the decorators to their contracts at compile time.
type probe struct{ id string }

func (p probe) Identity() string { return p.id }

// Ensure every decorator implements the contract it guards.
var (
	_ repository.Query[string, probe]      = (*Query[string, probe])(nil)
	_ repository.Command[string, probe]    = (*Command[string, probe])(nil)
	_ repository.Repository[string, probe] = (*Repository[string, probe])(nil)
	_ repository.UnitOfWork                = (*UnitOfWork)(nil)

	_ repository.AsyncQuery[string, probe]      = (*AsyncQuery[string, probe])(nil)
	_ repository.AsyncCommand[string, probe]    = (*AsyncCommand[string, probe])(nil)
	_ repository.AsyncRepository[string, probe] = (*AsyncRepository[string, probe])(nil)
	_ repository.AsyncUnitOfWork                = (*AsyncUnitOfWork)(nil)
)
