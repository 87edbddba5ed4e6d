package async

import (
	"errors"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// ErrNilDispatcher is returned when an adapter is constructed around a nil
// dispatcher.
var ErrNilDispatcher = errors.New("nil dispatcher supplied")

// dispatch submits one blocking operation and returns the future that will
// carry its outcome. A rejected submission resolves the future immediately
// with the submission error; the operation then never ran.
func dispatch[T any](d *Dispatcher, operation func() (T, error)) *repository.Future[T] {
	future := repository.NewFuture[T]()

	if err := d.Submit(func() { future.Complete(operation()) }); err != nil {
		var zero T
		future.Complete(zero, err)
	}

	return future
}

// dispatchVoid is dispatch for operations without a result.
func dispatchVoid(d *Dispatcher, operation func() error) *repository.Future[struct{}] {
	return dispatch(d, func() (struct{}, error) {
		return struct{}{}, operation()
	})
}
