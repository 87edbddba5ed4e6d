package mirror

import (
	"cmp"
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/decorator"
)

// Command mirrors every write on a primary command onto a tap command.
type Command[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.Command[K, E]
	tap      repository.Command[K, E]
	settings settings
}

// NewCommand wraps primary so every write is mirrored onto tap.
func NewCommand[K cmp.Ordered, E repository.Entity[K]](
	primary repository.Command[K, E],
	tap repository.Command[K, E],
	options ...Option,
) (*Command[K, E], error) {

	base, err := decorator.NewCommand(primary)
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

	return &Command[K, E]{Command: base, tap: tap, settings: s}, nil
}

func (c *Command[K, E]) Add(ctx context.Context, entity E) error {
	return c.settings.mirrored(opAdd,
		func() error { return c.Command.Add(ctx, entity) },
		c.tapUpsert(ctx, entity),
	)
}

func (c *Command[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	return c.settings.mirrored(opAddOrUpdate,
		func() error { return c.Command.AddOrUpdate(ctx, entity) },
		c.tapUpsert(ctx, entity),
	)
}

func (c *Command[K, E]) Update(ctx context.Context, entity E) error {
	return c.settings.mirrored(opUpdate,
		func() error { return c.Command.Update(ctx, entity) },
		c.tapUpsert(ctx, entity),
	)
}

func (c *Command[K, E]) Remove(ctx context.Context, entity E) error {
	return c.settings.mirrored(opRemove,
		func() error { return c.Command.Remove(ctx, entity) },
		c.tapRemove(ctx, entity),
	)
}

func (c *Command[K, E]) RemoveByID(ctx context.Context, id K) error {
	return c.settings.mirrored(opRemoveByID,
		func() error { return c.Command.RemoveByID(ctx, id) },
		c.tapRemoveByID(ctx, id),
	)
}

func (c *Command[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return c.settings.mirroredTry(opTryAdd,
		func() (bool, error) { return c.Command.TryAdd(ctx, entity) },
		c.tapUpsert(ctx, entity),
	)
}

func (c *Command[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	return c.settings.mirroredTry(opTryUpdate,
		func() (bool, error) { return c.Command.TryUpdate(ctx, entity) },
		c.tapUpsert(ctx, entity),
	)
}

func (c *Command[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return c.settings.mirroredTry(opTryRemove,
		func() (bool, error) { return c.Command.TryRemove(ctx, entity) },
		c.tapRemove(ctx, entity),
	)
}

func (c *Command[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return c.settings.mirroredTry(opTryRemoveByID,
		func() (bool, error) { return c.Command.TryRemoveByID(ctx, id) },
		c.tapRemoveByID(ctx, id),
	)
}

// tapUpsert mirrors additions and updates as the desired end state: the
// entity is stored on the tap whether or not it was there before.
func (c *Command[K, E]) tapUpsert(ctx context.Context, entity E) func() error {
	return func() error {
		return c.tap.AddOrUpdate(ctx, entity)
	}
}

// tapRemove mirrors removals tolerantly: an entity the tap never had is
// already in the desired end state, not a failure.
func (c *Command[K, E]) tapRemove(ctx context.Context, entity E) func() error {
	return func() error {
		_, err := c.tap.TryRemove(ctx, entity)
		return err
	}
}

func (c *Command[K, E]) tapRemoveByID(ctx context.Context, id K) func() error {
	return func() error {
		_, err := c.tap.TryRemoveByID(ctx, id)
		return err
	}
}

// AsyncCommand mirrors every write on a primary non-blocking command onto a
// tap non-blocking command. The caller-visible future resolves to the
// primary outcome once the tap write has been dealt with.
type AsyncCommand[K cmp.Ordered, E repository.Entity[K]] struct {
	*decorator.AsyncCommand[K, E]
	tap      repository.AsyncCommand[K, E]
	settings settings
}

// NewAsyncCommand wraps primary so every write is mirrored onto tap.
func NewAsyncCommand[K cmp.Ordered, E repository.Entity[K]](
	primary repository.AsyncCommand[K, E],
	tap repository.AsyncCommand[K, E],
	options ...Option,
) (*AsyncCommand[K, E], error) {

	base, err := decorator.NewAsyncCommand(primary)
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

	return &AsyncCommand[K, E]{AsyncCommand: base, tap: tap, settings: s}, nil
}

func (c *AsyncCommand[K, E]) Add(ctx context.Context, entity E) *repository.Future[struct{}] {
	return mirroredFuture(c.settings, opAdd,
		c.AsyncCommand.Add(ctx, entity),
		c.tapUpsert(ctx, entity),
	)
}

func (c *AsyncCommand[K, E]) AddOrUpdate(ctx context.Context, entity E) *repository.Future[struct{}] {
	return mirroredFuture(c.settings, opAddOrUpdate,
		c.AsyncCommand.AddOrUpdate(ctx, entity),
		c.tapUpsert(ctx, entity),
	)
}

func (c *AsyncCommand[K, E]) Update(ctx context.Context, entity E) *repository.Future[struct{}] {
	return mirroredFuture(c.settings, opUpdate,
		c.AsyncCommand.Update(ctx, entity),
		c.tapUpsert(ctx, entity),
	)
}

func (c *AsyncCommand[K, E]) Remove(ctx context.Context, entity E) *repository.Future[struct{}] {
	return mirroredFuture(c.settings, opRemove,
		c.AsyncCommand.Remove(ctx, entity),
		c.tapRemove(ctx, entity),
	)
}

func (c *AsyncCommand[K, E]) RemoveByID(ctx context.Context, id K) *repository.Future[struct{}] {
	return mirroredFuture(c.settings, opRemoveByID,
		c.AsyncCommand.RemoveByID(ctx, id),
		c.tapRemoveByID(ctx, id),
	)
}

func (c *AsyncCommand[K, E]) TryAdd(ctx context.Context, entity E) *repository.Future[bool] {
	return mirroredFuture(c.settings, opTryAdd,
		c.AsyncCommand.TryAdd(ctx, entity),
		c.tapUpsert(ctx, entity),
	)
}

func (c *AsyncCommand[K, E]) TryUpdate(ctx context.Context, entity E) *repository.Future[bool] {
	return mirroredFuture(c.settings, opTryUpdate,
		c.AsyncCommand.TryUpdate(ctx, entity),
		c.tapUpsert(ctx, entity),
	)
}

func (c *AsyncCommand[K, E]) TryRemove(ctx context.Context, entity E) *repository.Future[bool] {
	return mirroredFuture(c.settings, opTryRemove,
		c.AsyncCommand.TryRemove(ctx, entity),
		c.tapRemove(ctx, entity),
	)
}

func (c *AsyncCommand[K, E]) TryRemoveByID(ctx context.Context, id K) *repository.Future[bool] {
	return mirroredFuture(c.settings, opTryRemoveByID,
		c.AsyncCommand.TryRemoveByID(ctx, id),
		c.tapRemoveByID(ctx, id),
	)
}

// tapUpsert starts the mirrored upsert on the tap and waits for it.
func (c *AsyncCommand[K, E]) tapUpsert(ctx context.Context, entity E) func() error {
	return func() error {
		_, err := c.tap.AddOrUpdate(ctx, entity).Wait()
		return err
	}
}

func (c *AsyncCommand[K, E]) tapRemove(ctx context.Context, entity E) func() error {
	return func() error {
		_, err := c.tap.TryRemove(ctx, entity).Wait()
		return err
	}
}

func (c *AsyncCommand[K, E]) tapRemoveByID(ctx context.Context, id K) func() error {
	return func() error {
		_, err := c.tap.TryRemoveByID(ctx, id).Wait()
		return err
	}
}
