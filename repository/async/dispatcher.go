package async

import (
	"errors"
	"runtime"
	"sync"
)

var (
	// ErrDispatcherClosed is returned by Submit after Close.
	ErrDispatcherClosed = errors.New("dispatcher is closed")

	// ErrInvalidWorkerCount is returned when WithWorkers is given a count
	// below one.
	ErrInvalidWorkerCount = errors.New("invalid worker count supplied")
)

// Dispatcher runs submitted tasks on background goroutines. A fixed set of
// workers handles the steady load; when every worker is busy, a task gets a
// goroutine of its own instead of waiting.
//
// Submit never blocks and never runs the task on the submitting goroutine.
// Work that waits for other work submitted to the same dispatcher therefore
// cannot deadlock, whatever the worker count.
type Dispatcher struct {
	tasks     chan func()
	workers   sync.WaitGroup
	inflight  sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// DispatcherOption defines a functional option for configuring a Dispatcher.
type DispatcherOption func(*dispatcherConfig) error

type dispatcherConfig struct {
	workerCount int
}

// WithWorkers sets the number of resident worker goroutines. The default is
// runtime.NumCPU().
func WithWorkers(count int) DispatcherOption {
	return func(c *dispatcherConfig) error {
		if count < 1 {
			return ErrInvalidWorkerCount
		}

		c.workerCount = count

		return nil
	}
}

// NewDispatcher creates a Dispatcher and starts its workers.
func NewDispatcher(options ...DispatcherOption) (*Dispatcher, error) {
	config := dispatcherConfig{workerCount: runtime.NumCPU()}

	for _, option := range options {
		if err := option(&config); err != nil {
			return nil, err
		}
	}

	d := &Dispatcher{
		// Unbuffered on purpose: a send succeeds only when a worker is
		// ready to take the task right now, so nothing is ever queued
		// behind busy workers.
		tasks: make(chan func()),
	}

	d.workers.Add(config.workerCount)
	for range config.workerCount {
		go d.work()
	}

	return d, nil
}

// Submit schedules task to run on a background goroutine and returns
// without waiting for it. After Close it reports ErrDispatcherClosed and
// the task does not run.
func (d *Dispatcher) Submit(task func()) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	d.inflight.Add(1)
	wrapped := func() {
		defer d.inflight.Done()
		task()
	}

	select {
	case d.tasks <- wrapped:
	default:
		go wrapped()
	}

	return nil
}

// Close stops accepting tasks, waits for every submitted task to finish,
// and stops the workers. It is idempotent and safe to call concurrently
// with Submit.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		d.inflight.Wait()
		close(d.tasks)
		d.workers.Wait()
	})
}

func (d *Dispatcher) work() {
	defer d.workers.Done()

	for task := range d.tasks {
		task()
	}
}
