package testdoubles

import (
	"context"
	"sync"
)

// UnitOfWorkDouble implements the unit-of-work contract with call counting
// and failure injection.
type UnitOfWorkDouble struct {
	mu      sync.Mutex
	commits int
	failure error
}

// NewUnitOfWorkDouble creates a double whose Commit succeeds.
func NewUnitOfWorkDouble() *UnitOfWorkDouble {
	return &UnitOfWorkDouble{}
}

// FailWith scripts Commit to fail with err. Scripting a nil err restores
// normal behavior.
func (d *UnitOfWorkDouble) FailWith(err error) *UnitOfWorkDouble {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.failure = err

	return d
}

// CommitCalls reports how many times Commit was invoked.
func (d *UnitOfWorkDouble) CommitCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.commits
}

func (d *UnitOfWorkDouble) Commit(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.commits++

	return d.failure
}
