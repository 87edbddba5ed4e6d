package recovery

import (
	"errors"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

var (
	// ErrNilErrorKind is returned when a decorator is constructed with a
	// nil error kind.
	ErrNilErrorKind = errors.New("nil error kind supplied")

	// ErrNilPredicate is returned when a decorator is constructed with a
	// nil predicate.
	ErrNilPredicate = errors.New("nil predicate supplied")
)

// Predicate decides whether a failure of the declared kind is recovered.
// It receives the complete error value, so it can inspect joined causes,
// and is consulted at most once per operation.
type Predicate func(err error) bool

// guard holds the declared error kind and the predicate shared by all
// decorators in this package.
type guard struct {
	kind      error
	predicate Predicate
}

func newGuard(kind error, predicate Predicate) (guard, error) {
	if kind == nil {
		return guard{}, ErrNilErrorKind
	}

	if predicate == nil {
		return guard{}, ErrNilPredicate
	}

	return guard{kind: kind, predicate: predicate}, nil
}

// recovers reports whether err is a failure of the declared kind that the
// predicate approves for recovery. Failures of other kinds never reach the
// predicate.
func (g guard) recovers(err error) bool {
	if err == nil {
		return false
	}

	if !errors.Is(err, g.kind) {
		return false
	}

	return g.predicate(err)
}

// recoverVoid applies the rules to an operation without a result.
func (g guard) recoverVoid(err error) error {
	if g.recovers(err) {
		return nil
	}

	return err
}

// recoverTry applies the rules to a Try operation's outcome.
func (g guard) recoverTry(done bool, err error) (bool, error) {
	if g.recovers(err) {
		return false, nil
	}

	return done, err
}

// deriveFuture completes a new future from inner's outcome with the
// recovery rules applied: a recovered failure resolves to the neutral
// outcome produced by recovered, everything else is passed through with the
// error value intact.
func deriveFuture[T any](inner *repository.Future[T], g guard, recovered func() (T, error)) *repository.Future[T] {
	derived := repository.NewFuture[T]()

	go func() {
		value, err := inner.Wait()
		if g.recovers(err) {
			derived.Complete(recovered())
			return
		}

		derived.Complete(value, err)
	}()

	return derived
}
