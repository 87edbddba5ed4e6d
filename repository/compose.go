package repository

import (
	"cmp"
	"context"
)

// Composed joins independent query and command implementations into one
// Repository. It adds no behavior of its own: read operations forward to the
// query side, write operations to the command side. Both sides usually share
// one backend, but nothing requires that.
type Composed[K cmp.Ordered, E Entity[K]] struct {
	query   Query[K, E]
	command Command[K, E]
}

// Compose creates a Repository façade from separate query and command sides.
func Compose[K cmp.Ordered, E Entity[K]](query Query[K, E], command Command[K, E]) (*Composed[K, E], error) {
	if query == nil {
		return nil, ErrNilQuery
	}

	if command == nil {
		return nil, ErrNilCommand
	}

	return &Composed[K, E]{query: query, command: command}, nil
}

func (c *Composed[K, E]) GetCount(ctx context.Context) (int, error) {
	return c.query.GetCount(ctx)
}

func (c *Composed[K, E]) GetAll(ctx context.Context) ([]E, error) {
	return c.query.GetAll(ctx)
}

func (c *Composed[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	return c.query.GetByID(ctx, id)
}

func (c *Composed[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	return c.query.TryGetByID(ctx, id)
}

func (c *Composed[K, E]) Add(ctx context.Context, entity E) error {
	return c.command.Add(ctx, entity)
}

func (c *Composed[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	return c.command.AddOrUpdate(ctx, entity)
}

func (c *Composed[K, E]) Update(ctx context.Context, entity E) error {
	return c.command.Update(ctx, entity)
}

func (c *Composed[K, E]) Remove(ctx context.Context, entity E) error {
	return c.command.Remove(ctx, entity)
}

func (c *Composed[K, E]) RemoveByID(ctx context.Context, id K) error {
	return c.command.RemoveByID(ctx, id)
}

func (c *Composed[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return c.command.TryAdd(ctx, entity)
}

func (c *Composed[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return c.command.TryUpdate(ctx, entity)
}

func (c *Composed[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return c.command.TryRemove(ctx, entity)
}

func (c *Composed[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return c.command.TryRemoveByID(ctx, id)
}

// AsyncComposed joins independent non-blocking query and command
// implementations into one AsyncRepository, with the same forwarding rules
// as Composed.
type AsyncComposed[K cmp.Ordered, E Entity[K]] struct {
	query   AsyncQuery[K, E]
	command AsyncCommand[K, E]
}

// ComposeAsync creates an AsyncRepository façade from separate query and
// command sides.
func ComposeAsync[K cmp.Ordered, E Entity[K]](query AsyncQuery[K, E], command AsyncCommand[K, E]) (*AsyncComposed[K, E], error) {
	if query == nil {
		return nil, ErrNilQuery
	}

	if command == nil {
		return nil, ErrNilCommand
	}

	return &AsyncComposed[K, E]{query: query, command: command}, nil
}

func (c *AsyncComposed[K, E]) GetCount(ctx context.Context) *Future[int] {
	return c.query.GetCount(ctx)
}

func (c *AsyncComposed[K, E]) GetAll(ctx context.Context) *Future[[]E] {
	return c.query.GetAll(ctx)
}

func (c *AsyncComposed[K, E]) GetByID(ctx context.Context, id K) *Future[E] {
	return c.query.GetByID(ctx, id)
}

func (c *AsyncComposed[K, E]) TryGetByID(ctx context.Context, id K) *Future[Maybe[E]] {
	return c.query.TryGetByID(ctx, id)
}

func (c *AsyncComposed[K, E]) Add(ctx context.Context, entity E) *Future[struct{}] {
	return c.command.Add(ctx, entity)
}

func (c *AsyncComposed[K, E]) AddOrUpdate(ctx context.Context, entity E) *Future[struct{}] {
	return c.command.AddOrUpdate(ctx, entity)
}

func (c *AsyncComposed[K, E]) Update(ctx context.Context, entity E) *Future[struct{}] {
	return c.command.Update(ctx, entity)
}

func (c *AsyncComposed[K, E]) Remove(ctx context.Context, entity E) *Future[struct{}] {
	return c.command.Remove(ctx, entity)
}

func (c *AsyncComposed[K, E]) RemoveByID(ctx context.Context, id K) *Future[struct{}] {
	return c.command.RemoveByID(ctx, id)
}

func (c *AsyncComposed[K, E]) TryAdd(ctx context.Context, entity E) *Future[bool] {
	return c.command.TryAdd(ctx, entity)
}

func (c *AsyncComposed[K, E]) TryUpdate(ctx context.Context, entity E) *Future[bool] {
	return c.command.TryUpdate(ctx, entity)
}

func (c *AsyncComposed[K, E]) TryRemove(ctx context.Context, entity E) *Future[bool] {
	return c.command.TryRemove(ctx, entity)
}

func (c *AsyncComposed[K, E]) TryRemoveByID(ctx context.Context, id K) *Future[bool] {
	return c.command.TryRemoveByID(ctx, id)
}

// probe pins the façades to their contracts at compile time.
type probe struct{ id string }

func (p probe) Identity() string { return p.id }

// Ensure the façades implement the full repository contracts.
var (
	_ Repository[string, probe]      = (*Composed[string, probe])(nil)
	_ AsyncRepository[string, probe] = (*AsyncComposed[string, probe])(nil)
)
