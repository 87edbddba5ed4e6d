package async

import (
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// UnitOfWork adapts a blocking unit of work into the non-blocking contract.
type UnitOfWork struct {
	inner      repository.UnitOfWork
	dispatcher *Dispatcher
}

// NewUnitOfWork adapts inner onto dispatcher.
func NewUnitOfWork(inner repository.UnitOfWork, dispatcher *Dispatcher) (*UnitOfWork, error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	if dispatcher == nil {
		return nil, ErrNilDispatcher
	}

	return &UnitOfWork{inner: inner, dispatcher: dispatcher}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) *repository.Future[struct{}] {
	return dispatchVoid(u.dispatcher, func() error {
		return u.inner.Commit(ctx)
	})
}

// BlockingUnitOfWork adapts a non-blocking unit of work back into the
// blocking contract by waiting on the commit future.
type BlockingUnitOfWork struct {
	inner repository.AsyncUnitOfWork
}

// NewBlockingUnitOfWork adapts inner into the blocking contract.
func NewBlockingUnitOfWork(inner repository.AsyncUnitOfWork) (*BlockingUnitOfWork, error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &BlockingUnitOfWork{inner: inner}, nil
}

func (u *BlockingUnitOfWork) Commit(ctx context.Context) error {
	_, err := u.inner.Commit(ctx).Wait()
	return err
}

var (
	_ repository.AsyncUnitOfWork = (*UnitOfWork)(nil)
	_ repository.UnitOfWork      = (*BlockingUnitOfWork)(nil)
)
