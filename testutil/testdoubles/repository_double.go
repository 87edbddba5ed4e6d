// Package testdoubles provides scriptable implementations of the repository
// contracts for exercising decorators and adapters in tests: map-backed
// behavior, per-operation failure injection, and call recording.
package testdoubles

import (
	"cmp"
	"context"
	"sync"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// Operation names as recorded by the doubles and accepted by FailWith.
const (
	OpGetCount      = "GetCount"
	OpGetAll        = "GetAll"
	OpGetByID       = "GetByID"
	OpTryGetByID    = "TryGetByID"
	OpAdd           = "Add"
	OpAddOrUpdate   = "AddOrUpdate"
	OpUpdate        = "Update"
	OpRemove        = "Remove"
	OpRemoveByID    = "RemoveByID"
	OpTryAdd        = "TryAdd"
	OpTryUpdate     = "TryUpdate"
	OpTryRemove     = "TryRemove"
	OpTryRemoveByID = "TryRemoveByID"
)

// RepositoryDouble implements the full repository contract from a plain
// map. Every call is recorded in invocation order, and any operation can be
// scripted to fail with a chosen error instead of running. It is safe for
// concurrent use.
type RepositoryDouble[K cmp.Ordered, E repository.Entity[K]] struct {
	mu       sync.Mutex
	entities map[K]E
	calls    []string
	failures map[string]error
}

// NewRepositoryDouble creates a double preloaded with the given entities.
func NewRepositoryDouble[K cmp.Ordered, E repository.Entity[K]](entities ...E) *RepositoryDouble[K, E] {
	d := &RepositoryDouble[K, E]{
		entities: make(map[K]E, len(entities)),
		failures: make(map[string]error),
	}

	for _, entity := range entities {
		d.entities[entity.Identity()] = entity
	}

	return d
}

// FailWith scripts op to fail with err. Scripting a nil err restores normal
// behavior.
func (d *RepositoryDouble[K, E]) FailWith(op string, err error) *RepositoryDouble[K, E] {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err == nil {
		delete(d.failures, op)
	} else {
		d.failures[op] = err
	}

	return d
}

// CallsTo reports how many times op was invoked.
func (d *RepositoryDouble[K, E]) CallsTo(op string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := 0
	for _, call := range d.calls {
		if call == op {
			count++
		}
	}

	return count
}

// Calls returns the recorded operation names in invocation order.
func (d *RepositoryDouble[K, E]) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	calls := make([]string, len(d.calls))
	copy(calls, d.calls)

	return calls
}

// Stored reports whether an entity is stored under id, bypassing call
// recording and failure scripting.
func (d *RepositoryDouble[K, E]) Stored(id K) (E, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entity, ok := d.entities[id]

	return entity, ok
}

// StoredCount reports the number of stored entities, bypassing call
// recording and failure scripting.
func (d *RepositoryDouble[K, E]) StoredCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.entities)
}

func (d *RepositoryDouble[K, E]) GetCount(_ context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpGetCount); err != nil {
		return 0, err
	}

	return len(d.entities), nil
}

func (d *RepositoryDouble[K, E]) GetAll(_ context.Context) ([]E, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpGetAll); err != nil {
		return nil, err
	}

	all := make([]E, 0, len(d.entities))
	for _, entity := range d.entities {
		all = append(all, entity)
	}

	return all, nil
}

func (d *RepositoryDouble[K, E]) GetByID(_ context.Context, id K) (E, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero E

	if err := d.begin(OpGetByID); err != nil {
		return zero, err
	}

	entity, ok := d.entities[id]
	if !ok {
		return zero, repository.ErrEntityNotFound
	}

	return entity, nil
}

func (d *RepositoryDouble[K, E]) TryGetByID(_ context.Context, id K) (E, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero E

	if err := d.begin(OpTryGetByID); err != nil {
		return zero, false, err
	}

	entity, ok := d.entities[id]
	if !ok {
		return zero, false, nil
	}

	return entity, true, nil
}

func (d *RepositoryDouble[K, E]) Add(_ context.Context, entity E) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpAdd); err != nil {
		return err
	}

	if _, ok := d.entities[entity.Identity()]; ok {
		return repository.ErrEntityAlreadyExists
	}

	d.entities[entity.Identity()] = entity

	return nil
}

func (d *RepositoryDouble[K, E]) AddOrUpdate(_ context.Context, entity E) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpAddOrUpdate); err != nil {
		return err
	}

	d.entities[entity.Identity()] = entity

	return nil
}

func (d *RepositoryDouble[K, E]) Update(_ context.Context, entity E) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpUpdate); err != nil {
		return err
	}

	if _, ok := d.entities[entity.Identity()]; !ok {
		return repository.ErrEntityNotFound
	}

	d.entities[entity.Identity()] = entity

	return nil
}

func (d *RepositoryDouble[K, E]) Remove(_ context.Context, entity E) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpRemove); err != nil {
		return err
	}

	if _, ok := d.entities[entity.Identity()]; !ok {
		return repository.ErrEntityNotFound
	}

	delete(d.entities, entity.Identity())

	return nil
}

func (d *RepositoryDouble[K, E]) RemoveByID(_ context.Context, id K) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpRemoveByID); err != nil {
		return err
	}

	if _, ok := d.entities[id]; !ok {
		return repository.ErrEntityNotFound
	}

	delete(d.entities, id)

	return nil
}

func (d *RepositoryDouble[K, E]) TryAdd(_ context.Context, entity E) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpTryAdd); err != nil {
		return false, err
	}

	if _, ok := d.entities[entity.Identity()]; ok {
		return false, nil
	}

	d.entities[entity.Identity()] = entity

	return true, nil
}

func (d *RepositoryDouble[K, E]) TryUpdate(_ context.Context, entity E) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpTryUpdate); err != nil {
		return false, err
	}

	if _, ok := d.entities[entity.Identity()]; !ok {
		return false, nil
	}

	d.entities[entity.Identity()] = entity

	return true, nil
}

func (d *RepositoryDouble[K, E]) TryRemove(_ context.Context, entity E) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpTryRemove); err != nil {
		return false, err
	}

	if _, ok := d.entities[entity.Identity()]; !ok {
		return false, nil
	}

	delete(d.entities, entity.Identity())

	return true, nil
}

func (d *RepositoryDouble[K, E]) TryRemoveByID(_ context.Context, id K) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(OpTryRemoveByID); err != nil {
		return false, err
	}

	if _, ok := d.entities[id]; !ok {
		return false, nil
	}

	delete(d.entities, id)

	return true, nil
}

// begin records the call and returns the scripted failure, if any. The
// caller holds the mutex.
func (d *RepositoryDouble[K, E]) begin(op string) error {
	d.calls = append(d.calls, op)

	return d.failures[op]
}
