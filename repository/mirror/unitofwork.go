package mirror

import (
	"context"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/decorator"
)

// UnitOfWork mirrors Commit on a primary unit of work onto a tap unit of
// work, so both backends are asked to apply their recorded changes.
type UnitOfWork struct {
	*decorator.UnitOfWork
	tap      repository.UnitOfWork
	settings settings
}

// NewUnitOfWork wraps primary so Commit is mirrored onto tap.
func NewUnitOfWork(primary repository.UnitOfWork, tap repository.UnitOfWork, options ...Option) (*UnitOfWork, error) {
	base, err := decorator.NewUnitOfWork(primary)
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

	return &UnitOfWork{UnitOfWork: base, tap: tap, settings: s}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	return u.settings.mirrored(opCommit,
		func() error { return u.UnitOfWork.Commit(ctx) },
		func() error { return u.tap.Commit(ctx) },
	)
}

// AsyncUnitOfWork mirrors Commit on a primary non-blocking unit of work
// onto a tap non-blocking unit of work.
type AsyncUnitOfWork struct {
	*decorator.AsyncUnitOfWork
	tap      repository.AsyncUnitOfWork
	settings settings
}

// NewAsyncUnitOfWork wraps primary so Commit is mirrored onto tap.
func NewAsyncUnitOfWork(primary repository.AsyncUnitOfWork, tap repository.AsyncUnitOfWork, options ...Option) (*AsyncUnitOfWork, error) {
	base, err := decorator.NewAsyncUnitOfWork(primary)
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

	return &AsyncUnitOfWork{AsyncUnitOfWork: base, tap: tap, settings: s}, nil
}

func (u *AsyncUnitOfWork) Commit(ctx context.Context) *repository.Future[struct{}] {
	return mirroredFuture(u.settings, opCommit,
		u.AsyncUnitOfWork.Commit(ctx),
		func() error {
			_, err := u.tap.Commit(ctx).Wait()
			return err
		},
	)
}

var (
	_ repository.UnitOfWork      = (*UnitOfWork)(nil)
	_ repository.AsyncUnitOfWork = (*AsyncUnitOfWork)(nil)
)
