package repository

// Future is the single-assignment outcome handle of a non-blocking
// operation. The producer resolves it exactly once with Complete; any number
// of consumers can Wait for the outcome, in any order, before or after
// completion.
//
// The zero value is not usable; create futures with NewFuture or
// CompletedFuture.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// NewFuture creates a pending Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// CompletedFuture creates a Future that is already resolved with value and
// err.
func CompletedFuture[T any](value T, err error) *Future[T] {
	f := NewFuture[T]()
	f.Complete(value, err)

	return f
}

// Complete resolves the future. It must be called exactly once, by one
// producer; resolving a future twice panics.
func (f *Future[T]) Complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Wait blocks until the future is resolved and returns its outcome. The
// error is handed out exactly as the producer supplied it, never wrapped or
// copied, so callers can match it with errors.Is or compare it directly.
func (f *Future[T]) Wait() (T, error) {
	<-f.done

	return f.value, f.err
}

// Done returns a channel that is closed once the future is resolved, for
// select-based consumption alongside other channels. Reading the outcome
// still goes through Wait.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
