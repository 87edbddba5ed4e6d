package async

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// Command adapts a blocking command into the non-blocking contract. Every
// call submits the blocking write to the dispatcher and returns its future
// immediately.
type Command[K cmp.Ordered, E repository.Entity[K]] struct {
	inner      repository.Command[K, E]
	dispatcher *Dispatcher
}

// NewCommand adapts inner onto dispatcher.
func NewCommand[K cmp.Ordered, E repository.Entity[K]](
	inner repository.Command[K, E],
	dispatcher *Dispatcher,
) (*Command[K, E], error) {

	if inner == nil {
		return nil, repository.ErrNilInner
	}

	if dispatcher == nil {
		return nil, ErrNilDispatcher
	}

	return &Command[K, E]{inner: inner, dispatcher: dispatcher}, nil
}

func (c *Command[K, E]) Add(ctx context.Context, entity E) *repository.Future[struct{}] {
	return dispatchVoid(c.dispatcher, func() error {
		return c.inner.Add(ctx, entity)
	})
}

func (c *Command[K, E]) AddOrUpdate(ctx context.Context, entity E) *repository.Future[struct{}] {
	return dispatchVoid(c.dispatcher, func() error {
		return c.inner.AddOrUpdate(ctx, entity)
	})
}

func (c *Command[K, E]) Update(ctx context.Context, entity E) *repository.Future[struct{}] {
	return dispatchVoid(c.dispatcher, func() error {
		return c.inner.Update(ctx, entity)
	})
}

func (c *Command[K, E]) Remove(ctx context.Context, entity E) *repository.Future[struct{}] {
	return dispatchVoid(c.dispatcher, func() error {
		return c.inner.Remove(ctx, entity)
	})
}

func (c *Command[K, E]) RemoveByID(ctx context.Context, id K) *repository.Future[struct{}] {
	return dispatchVoid(c.dispatcher, func() error {
		return c.inner.RemoveByID(ctx, id)
	})
}

func (c *Command[K, E]) TryAdd(ctx context.Context, entity E) *repository.Future[bool] {
	return dispatch(c.dispatcher, func() (bool, error) {
		return c.inner.TryAdd(ctx, entity)
	})
}

func (c *Command[K, E]) TryUpdate(ctx context.Context, entity E) *repository.Future[bool] {
	return dispatch(c.dispatcher, func() (bool, error) {
		return c.inner.TryUpdate(ctx, entity)
	})
}

func (c *Command[K, E]) TryRemove(ctx context.Context, entity E) *repository.Future[bool] {
	return dispatch(c.dispatcher, func() (bool, error) {
		return c.inner.TryRemove(ctx, entity)
	})
}

func (c *Command[K, E]) TryRemoveByID(ctx context.Context, id K) *repository.Future[bool] {
	return dispatch(c.dispatcher, func() (bool, error) {
		return c.inner.TryRemoveByID(ctx, id)
	})
}

// BlockingCommand adapts a non-blocking command back into the blocking
// contract by waiting on each future.
type BlockingCommand[K cmp.Ordered, E repository.Entity[K]] struct {
	inner repository.AsyncCommand[K, E]
}

// NewBlockingCommand adapts inner into the blocking contract.
func NewBlockingCommand[K cmp.Ordered, E repository.Entity[K]](inner repository.AsyncCommand[K, E]) (*BlockingCommand[K, E], error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &BlockingCommand[K, E]{inner: inner}, nil
}

func (c *BlockingCommand[K, E]) Add(ctx context.Context, entity E) error {
	_, err := c.inner.Add(ctx, entity).Wait()
	return err
}

func (c *BlockingCommand[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	_, err := c.inner.AddOrUpdate(ctx, entity).Wait()
	return err
}

func (c *BlockingCommand[K, E]) Update(ctx context.Context, entity E) error {
	_, err := c.inner.Update(ctx, entity).Wait()
	return err
}

func (c *BlockingCommand[K, E]) Remove(ctx context.Context, entity E) error {
	_, err := c.inner.Remove(ctx, entity).Wait()
	return err
}

func (c *BlockingCommand[K, E]) RemoveByID(ctx context.Context, id K) error {
	_, err := c.inner.RemoveByID(ctx, id).Wait()
	return err
}

func (c *BlockingCommand[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return c.inner.TryAdd(ctx, entity).Wait()
}

func (c *BlockingCommand[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return c.inner.TryUpdate(ctx, entity).Wait()
}

func (c *BlockingCommand[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return c.inner.TryRemove(ctx, entity).Wait()
}

func (c *BlockingCommand[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return c.inner.TryRemoveByID(ctx, id).Wait()
}
