package recovery

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/decorator"
)

// Command recovers one declared kind of write failure. A recovered write
// without a result completes normally; a recovered Try write reports false.
type Command[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.Command[K, E]
	guard guard
}

// NewCommand wraps inner with recovery for failures matching kind, gated by
// predicate.
func NewCommand[K cmp.Ordered, E repository.Entity[K]](
	inner repository.Command[K, E],
	kind error,
	predicate Predicate,
) (*Command[K, E], error) {

	base, err := decorator.NewCommand(inner)
	if err != nil {
		return nil, err
	}

	g, err := newGuard(kind, predicate)
	if err != nil {
		return nil, err
	}

	return &Command[K, E]{Command: base, guard: g}, nil
}

func (c *Command[K, E]) Add(ctx context.Context, entity E) error {
	return c.guard.recoverVoid(c.Command.Add(ctx, entity))
}

func (c *Command[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	return c.guard.recoverVoid(c.Command.AddOrUpdate(ctx, entity))
}

func (c *Command[K, E]) Update(ctx context.Context, entity E) error {
	return c.guard.recoverVoid(c.Command.Update(ctx, entity))
}

func (c *Command[K, E]) Remove(ctx context.Context, entity E) error {
	return c.guard.recoverVoid(c.Command.Remove(ctx, entity))
}

func (c *Command[K, E]) RemoveByID(ctx context.Context, id K) error {
	return c.guard.recoverVoid(c.Command.RemoveByID(ctx, id))
}

func (c *Command[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return c.guard.recoverTry(c.Command.TryAdd(ctx, entity))
}

func (c *Command[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return c.guard.recoverTry(c.Command.TryUpdate(ctx, entity))
}

func (c *Command[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return c.guard.recoverTry(c.Command.TryRemove(ctx, entity))
}

func (c *Command[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return c.guard.recoverTry(c.Command.TryRemoveByID(ctx, id))
}

// AsyncCommand is the non-blocking variant of Command, applying the same
// rules to each inner future's outcome.
type AsyncCommand[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.AsyncCommand[K, E]
	guard guard
}

// NewAsyncCommand wraps inner with recovery for failures matching kind,
// gated by predicate.
func NewAsyncCommand[K cmp.Ordered, E repository.Entity[K]](
	inner repository.AsyncCommand[K, E],
	kind error,
	predicate Predicate,
) (*AsyncCommand[K, E], error) {

	base, err := decorator.NewAsyncCommand(inner)
	if err != nil {
		return nil, err
	}

	g, err := newGuard(kind, predicate)
	if err != nil {
		return nil, err
	}

	return &AsyncCommand[K, E]{AsyncCommand: base, guard: g}, nil
}

func (c *AsyncCommand[K, E]) Add(ctx context.Context, entity E) *repository.Future[struct{}] {
	return deriveFuture(c.AsyncCommand.Add(ctx, entity), c.guard, recoveredVoid)
}

func (c *AsyncCommand[K, E]) AddOrUpdate(ctx context.Context, entity E) *repository.Future[struct{}] {
	return deriveFuture(c.AsyncCommand.AddOrUpdate(ctx, entity), c.guard, recoveredVoid)
}

func (c *AsyncCommand[K, E]) Update(ctx context.Context, entity E) *repository.Future[struct{}] {
	return deriveFuture(c.AsyncCommand.Update(ctx, entity), c.guard, recoveredVoid)
}

func (c *AsyncCommand[K, E]) Remove(ctx context.Context, entity E) *repository.Future[struct{}] {
	return deriveFuture(c.AsyncCommand.Remove(ctx, entity), c.guard, recoveredVoid)
}

func (c *AsyncCommand[K, E]) RemoveByID(ctx context.Context, id K) *repository.Future[struct{}] {
	return deriveFuture(c.AsyncCommand.RemoveByID(ctx, id), c.guard, recoveredVoid)
}

func (c *AsyncCommand[K, E]) TryAdd(ctx context.Context, entity E) *repository.Future[bool] {
	return deriveFuture(c.AsyncCommand.TryAdd(ctx, entity), c.guard, recoveredTry)
}

func (c *AsyncCommand[K, E]) TryUpdate(ctx context.Context, entity E) *repository.Future[bool] {
	return deriveFuture(c.AsyncCommand.TryUpdate(ctx, entity), c.guard, recoveredTry)
}

func (c *AsyncCommand[K, E]) TryRemove(ctx context.Context, entity E) *repository.Future[bool] {
	return deriveFuture(c.AsyncCommand.TryRemove(ctx, entity), c.guard, recoveredTry)
}

func (c *AsyncCommand[K, E]) TryRemoveByID(ctx context.Context, id K) *repository.Future[bool] {
	return deriveFuture(c.AsyncCommand.TryRemoveByID(ctx, id), c.guard, recoveredTry)
}

func recoveredVoid() (struct{}, error) {
	return struct{}{}, nil
}

func recoveredTry() (bool, error) {
	return false, nil
}
