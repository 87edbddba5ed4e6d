package recovery

import (
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/decorator"
)

// UnitOfWork recovers one declared kind of commit failure. A recovered
// Commit completes normally; whether the inner unit of work applied its
// changes is then unknown to the caller, which is the tradeoff recovery
// always makes.
type UnitOfWork struct {
	*decorator.UnitOfWork
	guard guard
}

// NewUnitOfWork wraps inner with recovery for failures matching kind, gated
// by predicate.
func NewUnitOfWork(inner repository.UnitOfWork, kind error, predicate Predicate) (*UnitOfWork, error) {
	base, err := decorator.NewUnitOfWork(inner)
	if err != nil {
		return nil, err
	}

	g, err := newGuard(kind, predicate)
	if err != nil {
		return nil, err
	}

	return &UnitOfWork{UnitOfWork: base, guard: g}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	return u.guard.recoverVoid(u.UnitOfWork.Commit(ctx))
}

// AsyncUnitOfWork is the non-blocking variant of UnitOfWork.
type AsyncUnitOfWork struct {
	*decorator.AsyncUnitOfWork
	guard guard
}

// NewAsyncUnitOfWork wraps inner with recovery for failures matching kind,
// gated by predicate.
func NewAsyncUnitOfWork(inner repository.AsyncUnitOfWork, kind error, predicate Predicate) (*AsyncUnitOfWork, error) {
	base, err := decorator.NewAsyncUnitOfWork(inner)
	if err != nil {
		return nil, err
	}

	g, err := newGuard(kind, predicate)
	if err != nil {
		return nil, err
	}

	return &AsyncUnitOfWork{AsyncUnitOfWork: base, guard: g}, nil
}

func (u *AsyncUnitOfWork) Commit(ctx context.Context) *repository.Future[struct{}] {
	return deriveFuture(u.AsyncUnitOfWork.Commit(ctx), u.guard, recoveredVoid)
}

var (
	_ repository.UnitOfWork      = (*UnitOfWork)(nil)
	_ repository.AsyncUnitOfWork = (*AsyncUnitOfWork)(nil)
)
