// Package memoryengine provides an in-memory repository engine and a
// buffered unit of work on top of it. It is the reference backend for the
// contract semantics and the default backend in tests and examples.
package memoryengine

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// Store is an in-memory repository backed by a map under a read-write
// mutex. It is safe for concurrent use. Entities are held by value; an
// entity type containing pointers shares the pointed-to data between the
// store and its callers.
type Store[K cmp.Ordered, E repository.Entity[K]] struct {
	mu       sync.RWMutex
	entities map[K]E
}

// NewStore creates an empty Store.
func NewStore[K cmp.Ordered, E repository.Entity[K]]() *Store[K, E] {
	return &Store[K, E]{entities: make(map[K]E)}
}

func (s *Store[K, E]) GetCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entities), nil
}

// GetAll returns the stored entities ordered by identity, so repeated calls
// over an unchanged store list in the same order.
func (s *Store[K, E]) GetAll(_ context.Context) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]E, 0, len(s.entities))
	for _, entity := range s.entities {
		all = append(all, entity)
	}

	slices.SortFunc(all, func(a, b E) int {
		return cmp.Compare(a.Identity(), b.Identity())
	})

	return all, nil
}

func (s *Store[K, E]) GetByID(_ context.Context, id K) (E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[id]
	if !ok {
		var zero E
		return zero, repository.ErrEntityNotFound
	}

	return entity, nil
}

func (s *Store[K, E]) TryGetByID(_ context.Context, id K) (E, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[id]
	if !ok {
		var zero E
		return zero, false, nil
	}

	return entity, true, nil
}

func (s *Store[K, E]) Add(_ context.Context, entity E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.Identity()
	if _, ok := s.entities[id]; ok {
		return repository.ErrEntityAlreadyExists
	}

	s.entities[id] = entity

	return nil
}

func (s *Store[K, E]) AddOrUpdate(_ context.Context, entity E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities[entity.Identity()] = entity

	return nil
}

func (s *Store[K, E]) Update(_ context.Context, entity E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.Identity()
	if _, ok := s.entities[id]; !ok {
		return repository.ErrEntityNotFound
	}

	s.entities[id] = entity

	return nil
}

func (s *Store[K, E]) Remove(_ context.Context, entity E) error {
	return s.removeByID(entity.Identity())
}

func (s *Store[K, E]) RemoveByID(_ context.Context, id K) error {
	return s.removeByID(id)
}

func (s *Store[K, E]) TryAdd(_ context.Context, entity E) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.Identity()
	if _, ok := s.entities[id]; ok {
		return false, nil
	}

	s.entities[id] = entity

	return true, nil
}

func (s *Store[K, E]) TryUpdate(_ context.Context, entity E) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.Identity()
	if _, ok := s.entities[id]; !ok {
		return false, nil
	}

	s.entities[id] = entity

	return true, nil
}

func (s *Store[K, E]) TryRemove(_ context.Context, entity E) (bool, error) {
	return s.tryRemoveByID(entity.Identity())
}

func (s *Store[K, E]) TryRemoveByID(_ context.Context, id K) (bool, error) {
	return s.tryRemoveByID(id)
}

func (s *Store[K, E]) removeByID(id K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return repository.ErrEntityNotFound
	}

	delete(s.entities, id)

	return nil
}

func (s *Store[K, E]) tryRemoveByID(id K) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return false, nil
	}

	delete(s.entities, id)

	return true, nil
}

// lookup reads a single entity under the read lock, for collaborators in
// this package.
func (s *Store[K, E]) lookup(id K) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[id]

	return entity, ok
}

// probe pins the engine to its contracts at compile time.
type probe struct{ id string }

func (p probe) Identity() string { return p.id }

// Ensure the store implements the full repository contract.
var _ repository.Repository[string, probe] = (*Store[string, probe])(nil)
