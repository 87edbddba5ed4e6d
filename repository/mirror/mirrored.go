package mirror

import (
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

const (
	logMsgTapFailed  = "mirrored write failed on tap, result discarded"
	logAttrOperation = "operation"
	logAttrError     = "error"

	opAdd           = "add"
	opAddOrUpdate   = "add_or_update"
	opUpdate        = "update"
	opRemove        = "remove"
	opRemoveByID    = "remove_by_id"
	opTryAdd        = "try_add"
	opTryUpdate     = "try_update"
	opTryRemove     = "try_remove"
	opTryRemoveByID = "try_remove_by_id"
	opCommit        = "commit"
)

// mirrored runs a write without a result on the primary and mirrors it onto
// the tap according to the mode. The tap outcome never reaches the caller.
func (s settings) mirrored(op string, primary func() error, tap func() error) error {
	switch s.mode {
	case Concurrent:
		tapErr := make(chan error, 1)
		go func() { tapErr <- tap() }()

		primaryErr := primary()
		s.logTapFailure(op, <-tapErr)

		return primaryErr

	default: // Sequential
		if err := primary(); err != nil {
			return err
		}

		s.logTapFailure(op, tap())

		return nil
	}
}

// mirroredTry is mirrored for Try writes. The primary's flag passes through
// untouched; a false flag does not suppress the tap write.
func (s settings) mirroredTry(op string, primary func() (bool, error), tap func() error) (bool, error) {
	switch s.mode {
	case Concurrent:
		tapErr := make(chan error, 1)
		go func() { tapErr <- tap() }()

		done, primaryErr := primary()
		s.logTapFailure(op, <-tapErr)

		return done, primaryErr

	default: // Sequential
		done, err := primary()
		if err != nil {
			return done, err
		}

		s.logTapFailure(op, tap())

		return done, nil
	}
}

// mirroredFuture derives the caller-visible future of a mirrored
// non-blocking write. The primary future has already been started by the
// caller; runTap starts the tap write and waits for it. Sequential mode
// invokes runTap only after the primary completed successfully, concurrent
// mode invokes it right away.
func mirroredFuture[T any](s settings, op string, primary *repository.Future[T], runTap func() error) *repository.Future[T] {
	derived := repository.NewFuture[T]()

	switch s.mode {
	case Concurrent:
		tapErr := make(chan error, 1)
		go func() { tapErr <- runTap() }()

		go func() {
			value, primaryErr := primary.Wait()
			s.logTapFailure(op, <-tapErr)
			derived.Complete(value, primaryErr)
		}()

	default: // Sequential
		go func() {
			value, primaryErr := primary.Wait()
			if primaryErr != nil {
				derived.Complete(value, primaryErr)
				return
			}

			s.logTapFailure(op, runTap())
			derived.Complete(value, nil)
		}()
	}

	return derived
}

// logTapFailure logs one warning per failed tap write if a logger is
// configured.
func (s settings) logTapFailure(op string, err error) {
	if err == nil || s.logger == nil {
		return
	}

	s.logger.Warn(logMsgTapFailed, logAttrOperation, op, logAttrError, err.Error())
}
