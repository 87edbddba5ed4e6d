package decorator

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// Repository is the forwarding base for repository.Repository decorators.
// It delegates every read and write to the wrapped instance unchanged.
type Repository[K cmp.Ordered, E repository.Entity[K]] struct {
	inner repository.Repository[K, E]
}

// NewRepository wraps inner in a forwarding base.
func NewRepository[K cmp.Ordered, E repository.Entity[K]](inner repository.Repository[K, E]) (*Repository[K, E], error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &Repository[K, E]{inner: inner}, nil
}

// Unwrap returns the wrapped instance.
func (r *Repository[K, E]) Unwrap() repository.Repository[K, E] {
	return r.inner
}

func (r *Repository[K, E]) GetCount(ctx context.Context) (int, error) {
	return r.inner.GetCount(ctx)
}

func (r *Repository[K, E]) GetAll(ctx context.Context) ([]E, error) {
	return r.inner.GetAll(ctx)
}

func (r *Repository[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *Repository[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	return r.inner.TryGetByID(ctx, id)
}

func (r *Repository[K, E]) Add(ctx context.Context, entity E) error {
	return r.inner.Add(ctx, entity)
}

func (r *Repository[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	return r.inner.AddOrUpdate(ctx, entity)
}

func (r *Repository[K, E]) Update(ctx context.Context, entity E) error {
	return r.inner.Update(ctx, entity)
}

func (r *Repository[K, E]) Remove(ctx context.Context, entity E) error {
	return r.inner.Remove(ctx, entity)
}

func (r *Repository[K, E]) RemoveByID(ctx context.Context, id K) error {
	return r.inner.RemoveByID(ctx, id)
}

func (r *Repository[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return r.inner.TryAdd(ctx, entity)
}

func (r *Repository[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return r.inner.TryUpdate(ctx, entity)
}

func (r *Repository[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return r.inner.TryRemove(ctx, entity)
}

func (r *Repository[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return r.inner.TryRemoveByID(ctx, id)
}

// AsyncRepository is the forwarding base for repository.AsyncRepository
// decorators. It delegates every read and write to the wrapped instance
// unchanged, futures included.
type AsyncRepository[K cmp.Ordered, E repository.Entity[K]] struct {
	inner repository.AsyncRepository[K, E]
}

// NewAsyncRepository wraps inner in a forwarding base.
func NewAsyncRepository[K cmp.Ordered, E repository.Entity[K]](inner repository.AsyncRepository[K, E]) (*AsyncRepository[K, E], error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &AsyncRepository[K, E]{inner: inner}, nil
}

// Unwrap returns the wrapped instance.
func (r *AsyncRepository[K, E]) Unwrap() repository.AsyncRepository[K, E] {
	return r.inner
}

func (r *AsyncRepository[K, E]) GetCount(ctx context.Context) *repository.Future[int] {
	return r.inner.GetCount(ctx)
}

func (r *AsyncRepository[K, E]) GetAll(ctx context.Context) *repository.Future[[]E] {
	return r.inner.GetAll(ctx)
}

func (r *AsyncRepository[K, E]) GetByID(ctx context.Context, id K) *repository.Future[E] {
	return r.inner.GetByID(ctx, id)
}

func (r *AsyncRepository[K, E]) TryGetByID(ctx context.Context, id K) *repository.Future[repository.Maybe[E]] {
	return r.inner.TryGetByID(ctx, id)
}

func (r *AsyncRepository[K, E]) Add(ctx context.Context, entity E) *repository.Future[struct{}] {
	return r.inner.Add(ctx, entity)
}

func (r *AsyncRepository[K, E]) AddOrUpdate(ctx context.Context, entity E) *repository.Future[struct{}] {
	return r.inner.AddOrUpdate(ctx, entity)
}

func (r *AsyncRepository[K, E]) Update(ctx context.Context, entity E) *repository.Future[struct{}] {
	return r.inner.Update(ctx, entity)
}

func (r *AsyncRepository[K, E]) Remove(ctx context.Context, entity E) *repository.Future[struct{}] {
	return r.inner.Remove(ctx, entity)
}

func (r *AsyncRepository[K, E]) RemoveByID(ctx context.Context, id K) *repository.Future[struct{}] {
	return r.inner.RemoveByID(ctx, id)
}

func (r *AsyncRepository[K, E]) TryAdd(ctx context.Context, entity E) *repository.Future[bool] {
	return r.inner.TryAdd(ctx, entity)
}

func (r *AsyncRepository[K, E]) TryUpdate(ctx context.Context, entity E) *repository.Future[bool] {
	return r.inner.TryUpdate(ctx, entity)
}

func (r *AsyncRepository[K, E]) TryRemove(ctx context.Context, entity E) *repository.Future[bool] {
	return r.inner.TryRemove(ctx, entity)
}

func (r *AsyncRepository[K, E]) TryRemoveByID(ctx context.Context, id K) *repository.Future[bool] {
	return r.inner.TryRemoveByID(ctx, id)
}

// probe pins the bases to their contracts at compile time.
type probe struct{ id string }

func (p probe) Identity() string { return p.id }

// Ensure every base implements the contract it forwards.
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
