package decorator

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// Command is the forwarding base for repository.Command decorators. It
// delegates every write to the wrapped instance unchanged.
type Command[K cmp.Ordered, E repository.Entity[K]] struct {
	inner repository.Command[K, E]
}

// NewCommand wraps inner in a forwarding base.
func NewCommand[K cmp.Ordered, E repository.Entity[K]](inner repository.Command[K, E]) (*Command[K, E], error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &Command[K, E]{inner: inner}, nil
}

// Unwrap returns the wrapped instance.
func (c *Command[K, E]) Unwrap() repository.Command[K, E] {
	return c.inner
}

func (c *Command[K, E]) Add(ctx context.Context, entity E) error {
	return c.inner.Add(ctx, entity)
}

func (c *Command[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	return c.inner.AddOrUpdate(ctx, entity)
}

func (c *Command[K, E]) Update(ctx context.Context, entity E) error {
	return c.inner.Update(ctx, entity)
}

func (c *Command[K, E]) Remove(ctx context.Context, entity E) error {
	return c.inner.Remove(ctx, entity)
}

func (c *Command[K, E]) RemoveByID(ctx context.Context, id K) error {
	return c.inner.RemoveByID(ctx, id)
}

func (c *Command[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return c.inner.TryAdd(ctx, entity)
}

func (c *Command[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return c.inner.TryUpdate(ctx, entity)
}

func (c *Command[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return c.inner.TryRemove(ctx, entity)
}

func (c *Command[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return c.inner.TryRemoveByID(ctx, id)
}

// AsyncCommand is the forwarding base for repository.AsyncCommand
// decorators. It delegates every write to the wrapped instance unchanged,
// futures included.
type AsyncCommand[K cmp.Ordered, E repository.Entity[K]] struct {
	inner repository.AsyncCommand[K, E]
}

// NewAsyncCommand wraps inner in a forwarding base.
func NewAsyncCommand[K cmp.Ordered, E repository.Entity[K]](inner repository.AsyncCommand[K, E]) (*AsyncCommand[K, E], error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &AsyncCommand[K, E]{inner: inner}, nil
}

// Unwrap returns the wrapped instance.
func (c *AsyncCommand[K, E]) Unwrap() repository.AsyncCommand[K, E] {
	return c.inner
}

func (c *AsyncCommand[K, E]) Add(ctx context.Context, entity E) *repository.Future[struct{}] {
	return c.inner.Add(ctx, entity)
}

func (c *AsyncCommand[K, E]) AddOrUpdate(ctx context.Context, entity E) *repository.Future[struct{}] {
	return c.inner.AddOrUpdate(ctx, entity)
}

func (c *AsyncCommand[K, E]) Update(ctx context.Context, entity E) *repository.Future[struct{}] {
	return c.inner.Update(ctx, entity)
}

func (c *AsyncCommand[K, E]) Remove(ctx context.Context, entity E) *repository.Future[struct{}] {
	return c.inner.Remove(ctx, entity)
}

func (c *AsyncCommand[K, E]) RemoveByID(ctx context.Context, id K) *repository.Future[struct{}] {
	return c.inner.RemoveByID(ctx, id)
}

func (c *AsyncCommand[K, E]) TryAdd(ctx context.Context, entity E) *repository.Future[bool] {
	return c.inner.TryAdd(ctx, entity)
}

func (c *AsyncCommand[K, E]) TryUpdate(ctx context.Context, entity E) *repository.Future[bool] {
	return c.inner.TryUpdate(ctx, entity)
}

func (c *AsyncCommand[K, E]) TryRemove(ctx context.Context, entity E) *repository.Future[bool] {
	return c.inner.TryRemove(ctx, entity)
}

func (c *AsyncCommand[K, E]) TryRemoveByID(ctx context.Context, id K) *repository.Future[bool] {
	return c.inner.TryRemoveByID(ctx, id)
}
