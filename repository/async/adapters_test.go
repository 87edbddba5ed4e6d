package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/async"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/memoryengine"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/fixtures"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/testdoubles"
)

func Test_Query_ResolvesFuturesWithTheBackendOutcome(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Entry behind a future")
	store := memoryengine.NewStore[string, fixtures.Document]()
	assert.NoError(t, store.Add(ctx, document))

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	query, err := async.NewQuery[string, fixtures.Document](store, dispatcher)
	assert.NoError(t, err)

	// act
	count, err := query.GetCount(ctx).Wait()
	assert.NoError(t, err)

	maybe, err := query.TryGetByID(ctx, document.ID).Wait()
	assert.NoError(t, err)

	missing, err := query.TryGetByID(ctx, "no-such-id").Wait()

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, maybe.Found)
	assert.Equal(t, document, maybe.Value)
	assert.False(t, missing.Found)
	assert.Zero(t, missing.Value)
}

func Test_RoundTrip_PreservesBlockingSemantics(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memoryengine.NewStore[string, fixtures.Document]()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncRepo, err := async.NewRepository[string, fixtures.Document](store, dispatcher)
	assert.NoError(t, err)

	repo, err := async.NewBlockingRepository[string, fixtures.Document](asyncRepo)
	assert.NoError(t, err)

	document := fixtures.NewDocument("Round tripped entry")

	// act + assert: the round-tripped repository behaves like the store itself
	err = repo.Add(ctx, document)
	assert.NoError(t, err)

	err = repo.Add(ctx, document)
	assert.ErrorIs(t, err, repository.ErrEntityAlreadyExists)

	revised := document.WithTitle("Round tripped entry, revised")
	err = repo.Update(ctx, revised)
	assert.NoError(t, err)

	loaded, err := repo.GetByID(ctx, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, revised, loaded)

	done, err := repo.TryRemove(ctx, revised)
	assert.NoError(t, err)
	assert.True(t, done)

	count, err := repo.GetCount(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func Test_RoundTrip_PreservesErrorIdentity(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memoryengine.NewStore[string, fixtures.Document]()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncRepo, err := async.NewRepository[string, fixtures.Document](store, dispatcher)
	assert.NoError(t, err)

	repo, err := async.NewBlockingRepository[string, fixtures.Document](asyncRepo)
	assert.NoError(t, err)

	// act
	_, err = repo.GetByID(ctx, "no-such-id")

	// assert
	assert.Same(t, repository.ErrEntityNotFound, err, "the backend's error value should survive the round trip untouched")
}

func Test_RoundTrip_PreservesScriptedErrorValues(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection reset"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetAll, failure)

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncQuery, err := async.NewQuery[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	query, err := async.NewBlockingQuery[string, fixtures.Document](asyncQuery)
	assert.NoError(t, err)

	// act
	_, err = query.GetAll(ctx)

	// assert
	assert.Same(t, failure, err)
}

func Test_Command_CompletesFuturesWithoutAnyoneWaiting(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memoryengine.NewStore[string, fixtures.Document]()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	command, err := async.NewCommand[string, fixtures.Document](store, dispatcher)
	assert.NoError(t, err)

	document := fixtures.NewDocument("Entry written in the background")

	// act: observe completion through Done without calling Wait
	future := command.Add(ctx, document)

	select {
	case <-future.Done():
		// resolved, as expected
	case <-time.After(time.Second):
		t.Fatal("the write should complete without anyone waiting on it")
	}

	// assert
	loaded, err := store.GetByID(ctx, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, document, loaded)
}

func Test_Query_AfterDispatcherClose_ResolvesWithClosedError(t *testing.T) {
	// setup
	ctx := context.Background()
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)

	query, err := async.NewQuery[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	dispatcher.Close()

	// act
	_, err = query.GetCount(ctx).Wait()

	// assert
	assert.ErrorIs(t, err, async.ErrDispatcherClosed)
	assert.Equal(t, 0, inner.CallsTo(testdoubles.OpGetCount), "the backend should not be reached after Close")
}

func Test_UnitOfWork_RoundTrip_PreservesCommitSemantics(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memoryengine.NewStore[string, fixtures.Document]()

	unitOfWork, err := memoryengine.NewUnitOfWork[string, fixtures.Document](store)
	assert.NoError(t, err)

	document := fixtures.NewDocument("Entry committed through futures")
	assert.NoError(t, unitOfWork.Add(ctx, document))

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncUnitOfWork, err := async.NewUnitOfWork(unitOfWork, dispatcher)
	assert.NoError(t, err)

	blockingUnitOfWork, err := async.NewBlockingUnitOfWork(asyncUnitOfWork)
	assert.NoError(t, err)

	// act
	err = blockingUnitOfWork.Commit(ctx)
	assert.NoError(t, err)

	// assert
	loaded, err := store.GetByID(ctx, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, document, loaded)

	err = blockingUnitOfWork.Commit(ctx)
	assert.Same(t, memoryengine.ErrAlreadyCommitted, err, "single-use semantics should survive the round trip")
}

func Test_Constructors_RejectNilDependencies(t *testing.T) {
	// setup
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]()
	innerUnitOfWork := testdoubles.NewUnitOfWorkDouble()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	tests := []struct {
		name        string
		construct   func() (any, error)
		expectedErr error
	}{
		{
			name: "query_with_nil_inner",
			construct: func() (any, error) {
				return async.NewQuery[string, fixtures.Document](nil, dispatcher)
			},
			expectedErr: repository.ErrNilInner,
		},
		{
			name: "query_with_nil_dispatcher",
			construct: func() (any, error) {
				return async.NewQuery[string, fixtures.Document](inner, nil)
			},
			expectedErr: async.ErrNilDispatcher,
		},
		{
			name: "command_with_nil_inner",
			construct: func() (any, error) {
				return async.NewCommand[string, fixtures.Document](nil, dispatcher)
			},
			expectedErr: repository.ErrNilInner,
		},
		{
			name: "repository_with_nil_dispatcher",
			construct: func() (any, error) {
				return async.NewRepository[string, fixtures.Document](inner, nil)
			},
			expectedErr: async.ErrNilDispatcher,
		},
		{
			name: "unit_of_work_with_nil_inner",
			construct: func() (any, error) {
				return async.NewUnitOfWork(nil, dispatcher)
			},
			expectedErr: repository.ErrNilInner,
		},
		{
			name: "unit_of_work_with_nil_dispatcher",
			construct: func() (any, error) {
				return async.NewUnitOfWork(innerUnitOfWork, nil)
			},
			expectedErr: async.ErrNilDispatcher,
		},
		{
			name: "blocking_query_with_nil_inner",
			construct: func() (any, error) {
				return async.NewBlockingQuery[string, fixtures.Document](nil)
			},
			expectedErr: repository.ErrNilInner,
		},
		{
			name: "blocking_command_with_nil_inner",
			construct: func() (any, error) {
				return async.NewBlockingCommand[string, fixtures.Document](nil)
			},
			expectedErr: repository.ErrNilInner,
		},
		{
			name: "blocking_repository_with_nil_inner",
			construct: func() (any, error) {
				return async.NewBlockingRepository[string, fixtures.Document](nil)
			},
			expectedErr: repository.ErrNilInner,
		},
		{
			name: "blocking_unit_of_work_with_nil_inner",
			construct: func() (any, error) {
				return async.NewBlockingUnitOfWork(nil)
			},
			expectedErr: repository.ErrNilInner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			adapted, err := tt.construct()

			// assert
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, adapted)
		})
	}
}
