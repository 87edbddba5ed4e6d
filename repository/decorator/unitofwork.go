package decorator

import (
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// UnitOfWork is the forwarding base for repository.UnitOfWork decorators.
type UnitOfWork struct {
	inner repository.UnitOfWork
}

// NewUnitOfWork wraps inner in a forwarding base.
func NewUnitOfWork(inner repository.UnitOfWork) (*UnitOfWork, error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &UnitOfWork{inner: inner}, nil
}

// Unwrap returns the wrapped instance.
func (u *UnitOfWork) Unwrap() repository.UnitOfWork {
	return u.inner
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	return u.inner.Commit(ctx)
}

// AsyncUnitOfWork is the forwarding base for repository.AsyncUnitOfWork
// decorators.
type AsyncUnitOfWork struct {
	inner repository.AsyncUnitOfWork
}

// NewAsyncUnitOfWork wraps inner in a forwarding base.
func NewAsyncUnitOfWork(inner repository.AsyncUnitOfWork) (*AsyncUnitOfWork, error) {
	if inner == nil {
		return nil, repository.ErrNilInner
	}

	return &AsyncUnitOfWork{inner: inner}, nil
}

// Unwrap returns the wrapped instance.
func (u *AsyncUnitOfWork) Unwrap() repository.AsyncUnitOfWork {
	return u.inner
}

func (u *AsyncUnitOfWork) Commit(ctx context.Context) *repository.Future[struct{}] {
	return u.inner.Commit(ctx)
}

var (
	_ repository.UnitOfWork      = (*UnitOfWork)(nil)
	_ repository.AsyncUnitOfWork = (*AsyncUnitOfWork)(nil)
)
