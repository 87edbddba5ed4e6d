package mirror

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/decorator"
)

// Repository mirrors every write on a primary repository onto a tap
// repository. Reads are served by the primary alone; the tap's query half
// is never consulted.
type Repository[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.Repository[K, E]
	tap      repository.Repository[K, E]
	settings settings
}

// NewRepository wraps primary so every write is mirrored onto tap.
func NewRepository[K cmp.Ordered, E repository.Entity[K]](
	primary repository.Repository[K, E],
	tap repository.Repository[K, E],
	options ...Option,
) (*Repository[K, E], error) {

	base, err := decorator.NewRepository(primary)
	if err != nil {
		return nil, err
	}

	if tap == nil {
		return nil, ErrNilTap
	}

	s, err := newSettings(options)
	if err != nil {
		return nil, err
	}

	return &Repository[K, E]{Repository: base, tap: tap, settings: s}, nil
}

func (r *Repository[K, E]) Add(ctx context.Context, entity E) error {
	return r.settings.mirrored(opAdd,
		func() error { return r.Repository.Add(ctx, entity) },
		r.tapUpsert(ctx, entity),
	)
}

func (r *Repository[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	return r.settings.mirrored(opAddOrUpdate,
		func() error { return r.Repository.AddOrUpdate(ctx, entity) },
		r.tapUpsert(ctx, entity),
	)
}

func (r *Repository[K, E]) Update(ctx context.Context, entity E) error {
	return r.settings.mirrored(opUpdate,
		func() error { return r.Repository.Update(ctx, entity) },
		r.tapUpsert(ctx, entity),
	)
}

func (r *Repository[K, E]) Remove(ctx context.Context, entity E) error {
	return r.settings.mirrored(opRemove,
		func() error { return r.Repository.Remove(ctx, entity) },
		r.tapRemove(ctx, entity),
	)
}

func (r *Repository[K, E]) RemoveByID(ctx context.Context, id K) error {
	return r.settings.mirrored(opRemoveByID,
		func() error { return r.Repository.RemoveByID(ctx, id) },
		r.tapRemoveByID(ctx, id),
	)
}

func (r *Repository[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return r.settings.mirroredTry(opTryAdd,
		func() (bool, error) { return r.Repository.TryAdd(ctx, entity) },
		r.tapUpsert(ctx, entity),
	)
}

func (r *Repository[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return r.settings.mirroredTry(opTryUpdate,
		func() (bool, error) { return r.Repository.TryUpdate(ctx, entity) },
		r.tapUpsert(ctx, entity),
	)
}

func (r *Repository[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return r.settings.mirroredTry(opTryRemove,
		func() (bool, error) { return r.Repository.TryRemove(ctx, entity) },
		r.tapRemove(ctx, entity),
	)
}

func (r *Repository[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return r.settings.mirroredTry(opTryRemoveByID,
		func() (bool, error) { return r.Repository.TryRemoveByID(ctx, id) },
		r.tapRemoveByID(ctx, id),
	)
}

func (r *Repository[K, E]) tapUpsert(ctx context.Context, entity E) func() error {
	return func() error {
		return r.tap.AddOrUpdate(ctx, entity)
	}
}

func (r *Repository[K, E]) tapRemove(ctx context.Context, entity E) func() error {
	return func() error {
		_, err := r.tap.TryRemove(ctx, entity)
		return err
	}
}

func (r *Repository[K, E]) tapRemoveByID(ctx context.Context, id K) func() error {
	return func() error {
		_, err := r.tap.TryRemoveByID(ctx, id)
		return err
	}
}

// AsyncRepository mirrors every write on a primary non-blocking repository
// onto a tap non-blocking repository. Reads are served by the primary alone.
type AsyncRepository[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.AsyncRepository[K, E]
	tap      repository.AsyncRepository[K, E]
	settings settings
}

// NewAsyncRepository wraps primary so every write is mirrored onto tap.
func NewAsyncRepository[K cmp.Ordered, E repository.Entity[K]](
	primary repository.AsyncRepository[K, E],
	tap repository.AsyncRepository[K, E],
	options ...Option,
) (*AsyncRepository[K, E], error) {

	base, err := decorator.NewAsyncRepository(primary)
	if err != nil {
		return nil, err
	}

	if tap == nil {
		return nil, ErrNilTap
	}

	s, err := newSettings(options)
	if err != nil {
		return nil, err
	}

	return &AsyncRepository[K, E]{AsyncRepository: base, tap: tap, settings: s}, nil
}

func (r *AsyncRepository[K, E]) Add(ctx context.Context, entity E) *repository.Future[struct{}] {
	return mirroredFuture(r.settings, opAdd,
		r.AsyncRepository.Add(ctx, entity),
		r.tapUpsert(ctx, entity),
	)
}

func (r *AsyncRepository[K, E]) AddOrUpdate(ctx context.Context, entity E) *repository.Future[struct{}] {
	return mirroredFuture(r.settings, opAddOrUpdate,
		r.AsyncRepository.AddOrUpdate(ctx, entity),
		r.tapUpsert(ctx, entity),
	)
}

func (r *AsyncRepository[K, E]) Update(ctx context.Context, entity E) *repository.Future[struct{}] {
	return mirroredFuture(r.settings, opUpdate,
		r.AsyncRepository.Update(ctx, entity),
		r.tapUpsert(ctx, entity),
	)
}

func (r *AsyncRepository[K, E]) Remove(ctx context.Context, entity E) *repository.Future[struct{}] {
	return mirroredFuture(r.settings, opRemove,
		r.AsyncRepository.Remove(ctx, entity),
		r.tapRemove(ctx, entity),
	)
}

func (r *AsyncRepository[K, E]) RemoveByID(ctx context.Context, id K) *repository.Future[struct{}] {
	return mirroredFuture(r.settings, opRemoveByID,
		r.AsyncRepository.RemoveByID(ctx, id),
		r.tapRemoveByID(ctx, id),
	)
}

func (r *AsyncRepository[K, E]) TryAdd(ctx context.Context, entity E) *repository.Future[bool] {
	return mirroredFuture(r.settings, opTryAdd,
		r.AsyncRepository.TryAdd(ctx, entity),
		r.tapUpsert(ctx, entity),
	)
}

func (r *AsyncRepository[K, E]) TryUpdate(ctx context.Context, entity E) *repository.Future[bool] {
	return mirroredFuture(r.settings, opTryUpdate,
		r.AsyncRepository.TryUpdate(ctx, entity),
		r.tapUpsert(ctx, entity),
	)
}

func (r *AsyncRepository[K, E]) TryRemove(ctx context.Context, entity E) *repository.Future[bool] {
	return mirroredFuture(r.settings, opTryRemove,
		r.AsyncRepository.TryRemove(ctx, entity),
		r.tapRemove(ctx, entity),
	)
}

func (r *AsyncRepository[K, E]) TryRemoveByID(ctx context.Context, id K) *repository.Future[bool] {
	return mirroredFuture(r.settings, opTryRemoveByID,
		r.AsyncRepository.TryRemoveByID(ctx, id),
		r.tapRemoveByID(ctx, id),
	)
}

func (r *AsyncRepository[K, E]) tapUpsert(ctx context.Context, entity E) func() error {
	return func() error {
		_, err := r.tap.AddOrUpdate(ctx, entity).Wait()
		return err
	}
}

func (r *AsyncRepository[K, E]) tapRemove(ctx context.Context, entity E) func() error {
	return func() error {
		_, err := r.tap.TryRemove(ctx, entity).Wait()
		return err
	}
}

func (r *AsyncRepository[K, E]) tapRemoveByID(ctx context.Context, id K) func() error {
	return func() error {
		_, err := r.tap.TryRemoveByID(ctx, id).Wait()
		return err
	}
}

// probe pins the decorators to their contracts at compile time.
type probe struct{ id string }

func (p probe) Identity() string { return p.id }

// Ensure every decorator implements the contract it mirrors.
var (
	_ repository.Command[string, probe]    = (*Command[string, probe])(nil)
	_ repository.Repository[string, probe] = (*Repository[string, probe])(nil)
	_ repository.UnitOfWork                = (*UnitOfWork)(nil)

	_ repository.AsyncCommand[string, probe]    = (*AsyncCommand[string, probe])(nil)
	_ repository.AsyncRepository[string, probe] = (*AsyncRepository[string, probe])(nil)
	_ repository.AsyncUnitOfWork                = (*AsyncUnitOfWork)(nil)
)
