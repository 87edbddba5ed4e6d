package async

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// Repository adapts a blocking repository into the non-blocking contract,
// combining the Query and Command adapters over one dispatcher.
type Repository[K cmp.Ordered, E repository.Entity[K]] struct {
	query   *Query[K, E]
	command *Command[K, E]
}

// NewRepository adapts inner onto dispatcher.
func NewRepository[K cmp.Ordered, E repository.Entity[K]](
	inner repository.Repository[K, E],
	dispatcher *Dispatcher,
) (*Repository[K, E], error) {

	query, err := NewQuery[K, E](inner, dispatcher)
	if err != nil {
		return nil, err
	}

	command, err := NewCommand[K, E](inner, dispatcher)
	if err != nil {
		return nil, err
	}

	return &Repository[K, E]{query: query, command: command}, nil
}

func (r *Repository[K, E]) GetCount(ctx context.Context) *repository.Future[int] {
	return r.query.GetCount(ctx)
}

func (r *Repository[K, E]) GetAll(ctx context.Context) *repository.Future[[]E] {
	return r.query.GetAll(ctx)
}

func (r *Repository[K, E]) GetByID(ctx context.Context, id K) *repository.Future[E] {
	return r.query.GetByID(ctx, id)
}

func (r *Repository[K, E]) TryGetByID(ctx context.Context, id K) *repository.Future[repository.Maybe[E]] {
	return r.query.TryGetByID(ctx, id)
}

func (r *Repository[K, E]) Add(ctx context.Context, entity E) *repository.Future[struct{}] {
	return r.command.Add(ctx, entity)
}

func (r *Repository[K, E]) AddOrUpdate(ctx context.Context, entity E) *repository.Future[struct{}] {
	return r.command.AddOrUpdate(ctx, entity)
}

func (r *Repository[K, E]) Update(ctx context.Context, entity E) *repository.Future[struct{}] {
	return r.command.Update(ctx, entity)
}

func (r *Repository[K, E]) Remove(ctx context.Context, entity E) *repository.Future[struct{}] {
	return r.command.Remove(ctx, entity)
}

func (r *Repository[K, E]) RemoveByID(ctx context.Context, id K) *repository.Future[struct{}] {
	return r.command.RemoveByID(ctx, id)
}

func (r *Repository[K, E]) TryAdd(ctx context.Context, entity E) *repository.Future[bool] {
	return r.command.TryAdd(ctx, entity)
}

func (r *Repository[K, E]) TryUpdate(ctx context.Context, entity E) *repository.Future[bool] {
	return r.command.TryUpdate(ctx, entity)
}

func (r *Repository[K, E]) TryRemove(ctx context.Context, entity E) *repository.Future[bool] {
	return r.command.TryRemove(ctx, entity)
}

func (r *Repository[K, E]) TryRemoveByID(ctx context.Context, id K) *repository.Future[bool] {
	return r.command.TryRemoveByID(ctx, id)
}

// BlockingRepository adapts a non-blocking repository back into the
// blocking contract by waiting on each future.
type BlockingRepository[K cmp.Ordered, E repository.Entity[K]] struct {
	query   *BlockingQuery[K, E]
	command *BlockingCommand[K, E]
}

// NewBlockingRepository adapts inner into the blocking contract.
func NewBlockingRepository[K cmp.Ordered, E repository.Entity[K]](inner repository.AsyncRepository[K, E]) (*BlockingRepository[K, E], error) {
	query, err := NewBlockingQuery[K, E](inner)
	if err != nil {
		return nil, err
	}

	command, err := NewBlockingCommand[K, E](inner)
	if err != nil {
		return nil, err
	}

	return &BlockingRepository[K, E]{query: query, command: command}, nil
}

func (r *BlockingRepository[K, E]) GetCount(ctx context.Context) (int, error) {
	return r.query.GetCount(ctx)
}

func (r *BlockingRepository[K, E]) GetAll(ctx context.Context) ([]E, error) {
	return r.query.GetAll(ctx)
}

func (r *BlockingRepository[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	return r.query.GetByID(ctx, id)
}

func (r *BlockingRepository[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	return r.query.TryGetByID(ctx, id)
}

func (r *BlockingRepository[K, E]) Add(ctx context.Context, entity E) error {
	return r.command.Add(ctx, entity)
}

func (r *BlockingRepository[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	return r.command.AddOrUpdate(ctx, entity)
}

func (r *BlockingRepository[K, E]) Update(ctx context.Context, entity E) error {
	return r.command.Update(ctx, entity)
}

func (r *BlockingRepository[K, E]) Remove(ctx context.Context, entity E) error {
	return r.command.Remove(ctx, entity)
}

func (r *BlockingRepository[K, E]) RemoveByID(ctx context.Context, id K) error {
	return r.command.RemoveByID(ctx, id)
}

func (r *BlockingRepository[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return r.command.TryAdd(ctx, entity)
}

func (r *BlockingRepository[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return r.command.TryUpdate(ctx, entity)
}

func (r *BlockingRepository[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return r.command.TryRemove(ctx, entity)
}

func (r *BlockingRepository[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return r.command.TryRemoveByID(ctx, id)
}

// probe pins the adapters to their contracts at compile time.
type probe struct{ id string }

func (p probe) Identity() string { return p.id }

// Ensure each adapter implements the contract on its far side of the bridge.
var (
	_ repository.AsyncQuery[string, probe]      = (*Query[string, probe])(nil)
	_ repository.AsyncCommand[string, probe]    = (*Command[string, probe])(nil)
	_ repository.AsyncRepository[string, probe] = (*Repository[string, probe])(nil)
	_ repository.AsyncUnitOfWork                = (*UnitOfWork)(nil)

	_ repository.Query[string, probe]      = (*BlockingQuery[string, probe])(nil)
	_ repository.Command[string, probe]    = (*BlockingCommand[string, probe])(nil)
	_ repository.Repository[string, probe] = (*BlockingRepository[string, probe])(nil)
	_ repository.UnitOfWork                = (*BlockingUnitOfWork)(nil)
)
