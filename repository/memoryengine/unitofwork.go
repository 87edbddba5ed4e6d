package memoryengine

import (
	"cmp"
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

var (
	// ErrAlreadyCommitted is returned when a unit of work is used after its
	// changes have been committed. A unit of work is single-use.
	ErrAlreadyCommitted = errors.New("unit of work already committed")

	// ErrCommitConflict is returned when the store changed between
	// recording a change and committing it, so the change's precondition no
	// longer holds. Nothing has been applied when it is returned.
	ErrCommitConflict = errors.New("store changed since changes were recorded")

	// ErrNilStore is returned when a unit of work is constructed around a
	// nil store.
	ErrNilStore = errors.New("nil store supplied")
)

type changeKind int

const (
	changeAdd changeKind = iota
	changeAddOrUpdate
	changeUpdate
	changeRemove
)

type pendingChange[K cmp.Ordered, E repository.Entity[K]] struct {
	kind   changeKind
	id     K
	entity E
}

// overlayState is the unit of work's view of one identity: the recorded
// entity, or a recorded removal when present is false.
type overlayState[E any] struct {
	entity  E
	present bool
}

// UnitOfWork records writes against a Store and applies them in one atomic
// step at Commit. It implements the command contract, so it can stand in
// wherever a command is expected, and every recorded write observes the
// writes recorded before it.
//
// Write operations validate their precondition against the store state as
// projected at call time. Commit revalidates every recorded change under
// the store's lock; when an interleaved writer has invalidated one, Commit
// reports ErrCommitConflict and applies nothing. A UnitOfWork is single-use
// and safe for concurrent use.
type UnitOfWork[K cmp.Ordered, E repository.Entity[K]] struct {
	mu        sync.Mutex
	store     *Store[K, E]
	pending   []pendingChange[K, E]
	overlay   map[K]overlayState[E]
	committed bool
}

// NewUnitOfWork creates a UnitOfWork recording against store.
func NewUnitOfWork[K cmp.Ordered, E repository.Entity[K]](store *Store[K, E]) (*UnitOfWork[K, E], error) {
	if store == nil {
		return nil, ErrNilStore
	}

	return &UnitOfWork[K, E]{
		store:   store,
		overlay: make(map[K]overlayState[E]),
	}, nil
}

func (u *UnitOfWork[K, E]) Add(_ context.Context, entity E) error {
	_, err := u.record(changeAdd, entity.Identity(), entity, true)
	return err
}

func (u *UnitOfWork[K, E]) AddOrUpdate(_ context.Context, entity E) error {
	_, err := u.record(changeAddOrUpdate, entity.Identity(), entity, true)
	return err
}

func (u *UnitOfWork[K, E]) Update(_ context.Context, entity E) error {
	_, err := u.record(changeUpdate, entity.Identity(), entity, true)
	return err
}

func (u *UnitOfWork[K, E]) Remove(_ context.Context, entity E) error {
	_, err := u.record(changeRemove, entity.Identity(), entity, true)
	return err
}

func (u *UnitOfWork[K, E]) RemoveByID(_ context.Context, id K) error {
	var zero E
	_, err := u.record(changeRemove, id, zero, true)
	return err
}

func (u *UnitOfWork[K, E]) TryAdd(_ context.Context, entity E) (bool, error) {
	return u.record(changeAdd, entity.Identity(), entity, false)
}

func (u *UnitOfWork[K, E]) TryUpdate(_ context.Context, entity E) (bool, error) {
	return u.record(changeUpdate, entity.Identity(), entity, false)
}

func (u *UnitOfWork[K, E]) TryRemove(_ context.Context, entity E) (bool, error) {
	return u.record(changeRemove, entity.Identity(), entity, false)
}

func (u *UnitOfWork[K, E]) TryRemoveByID(_ context.Context, id K) (bool, error) {
	var zero E
	return u.record(changeRemove, id, zero, false)
}

// Commit applies every recorded change to the store in one atomic step.
func (u *UnitOfWork[K, E]) Commit(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.committed {
		return ErrAlreadyCommitted
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	next := maps.Clone(u.store.entities)
	for _, change := range u.pending {
		if err := applyChange(next, change); err != nil {
			return errors.Join(ErrCommitConflict, err)
		}
	}

	u.store.entities = next
	u.committed = true

	return nil
}

// record validates one write against the projected state and buffers it.
// For strict writes a failed precondition surfaces as the contract's
// sentinel; for Try writes it surfaces as recorded == false.
func (u *UnitOfWork[K, E]) record(kind changeKind, id K, entity E, strict bool) (recorded bool, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.committed {
		return false, ErrAlreadyCommitted
	}

	_, exists := u.projected(id)

	switch kind {
	case changeAdd:
		if exists {
			if strict {
				return false, repository.ErrEntityAlreadyExists
			}
			return false, nil
		}

	case changeUpdate, changeRemove:
		if !exists {
			if strict {
				return false, repository.ErrEntityNotFound
			}
			return false, nil
		}

	case changeAddOrUpdate:
		// no precondition
	}

	u.pending = append(u.pending, pendingChange[K, E]{kind: kind, id: id, entity: entity})
	u.overlay[id] = overlayState[E]{entity: entity, present: kind != changeRemove}

	return true, nil
}

// projected resolves an identity against the recorded writes first and the
// live store second.
func (u *UnitOfWork[K, E]) projected(id K) (E, bool) {
	if state, ok := u.overlay[id]; ok {
		return state.entity, state.present
	}

	return u.store.lookup(id)
}

// applyChange replays one recorded change onto the staged map, revalidating
// the precondition it was recorded under.
func applyChange[K cmp.Ordered, E repository.Entity[K]](staged map[K]E, change pendingChange[K, E]) error {
	_, exists := staged[change.id]

	switch change.kind {
	case changeAdd:
		if exists {
			return repository.ErrEntityAlreadyExists
		}
		staged[change.id] = change.entity

	case changeAddOrUpdate:
		staged[change.id] = change.entity

	case changeUpdate:
		if !exists {
			return repository.ErrEntityNotFound
		}
		staged[change.id] = change.entity

	case changeRemove:
		if !exists {
			return repository.ErrEntityNotFound
		}
		delete(staged, change.id)
	}

	return nil
}

// Ensure the unit of work records commands and commits.
var (
	_ repository.Command[string, probe] = (*UnitOfWork[string, probe])(nil)
	_ repository.UnitOfWork             = (*UnitOfWork[string, probe])(nil)
)
