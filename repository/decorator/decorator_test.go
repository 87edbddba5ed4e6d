package decorator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/async"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/decorator"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/fixtures"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/testdoubles"
)

func Test_Query_ForwardsEveryReadToTheWrappedInstance(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Forwarded entry")
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document](document)

	query, err := decorator.NewQuery[string, fixtures.Document](inner)
	assert.NoError(t, err)

	// act
	count, err := query.GetCount(ctx)
	assert.NoError(t, err)

	all, err := query.GetAll(ctx)
	assert.NoError(t, err)

	loaded, err := query.GetByID(ctx, document.ID)
	assert.NoError(t, err)

	loadedViaTry, found, err := query.TryGetByID(ctx, document.ID)
	assert.NoError(t, err)

	// assert
	assert.Equal(t, 1, count)
	assert.Len(t, all, 1)
	assert.Equal(t, document, loaded)
	assert.True(t, found)
	assert.Equal(t, document, loadedViaTry)

	expectedCalls := []string{
		testdoubles.OpGetCount,
		testdoubles.OpGetAll,
		testdoubles.OpGetByID,
		testdoubles.OpTryGetByID,
	}
	assert.Equal(t, expectedCalls, inner.Calls())
}

func Test_Query_HandsInnerErrorsThroughUnchanged(t *testing.T) {
	// setup
	ctx := context.Background()
	expectedErr := errors.Join(repository.ErrQueryFailed, errors.New("connection reset"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetCount, expectedErr)

	query, err := decorator.NewQuery[string, fixtures.Document](inner)
	assert.NoError(t, err)

	// act
	_, err = query.GetCount(ctx)

	// assert
	assert.Same(t, expectedErr, err)
}

//nolint:funlen
func Test_Command_ForwardsEveryWriteToTheWrappedInstance(t *testing.T) {
	// setup
	ctx := context.Background()
	seeded := fixtures.NewDocument("Seeded entry")
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document](seeded)

	command, err := decorator.NewCommand[string, fixtures.Document](inner)
	assert.NoError(t, err)

	first := fixtures.NewDocument("First entry")
	second := fixtures.NewDocument("Second entry")

	// act
	err = command.Add(ctx, first)
	assert.NoError(t, err)

	err = command.AddOrUpdate(ctx, first.WithTitle("First entry, revised"))
	assert.NoError(t, err)

	err = command.Update(ctx, first.WithTitle("First entry, revised again"))
	assert.NoError(t, err)

	err = command.Remove(ctx, first)
	assert.NoError(t, err)

	err = command.RemoveByID(ctx, seeded.ID)
	assert.NoError(t, err)

	ok, err := command.TryAdd(ctx, second)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = command.TryUpdate(ctx, second.WithTitle("Second entry, revised"))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = command.TryRemove(ctx, second)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = command.TryRemoveByID(ctx, second.ID)
	assert.NoError(t, err)
	assert.False(t, ok, "the entry was already removed")

	// assert
	expectedCalls := []string{
		testdoubles.OpAdd,
		testdoubles.OpAddOrUpdate,
		testdoubles.OpUpdate,
		testdoubles.OpRemove,
		testdoubles.OpRemoveByID,
		testdoubles.OpTryAdd,
		testdoubles.OpTryUpdate,
		testdoubles.OpTryRemove,
		testdoubles.OpTryRemoveByID,
	}
	assert.Equal(t, expectedCalls, inner.Calls())
	assert.Equal(t, 0, inner.StoredCount())
}

func Test_Repository_ForwardsReadsAndWrites(t *testing.T) {
	// setup
	ctx := context.Background()
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	repo, err := decorator.NewRepository[string, fixtures.Document](inner)
	assert.NoError(t, err)

	document := fixtures.NewDocument("Round trip entry")

	// act
	err = repo.Add(ctx, document)
	assert.NoError(t, err)

	loaded, err := repo.GetByID(ctx, document.ID)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, document, loaded)
	assert.Equal(t, 1, inner.CallsTo(testdoubles.OpAdd))
	assert.Equal(t, 1, inner.CallsTo(testdoubles.OpGetByID))
}

func Test_UnitOfWork_ForwardsCommit(t *testing.T) {
	// setup
	ctx := context.Background()
	inner := testdoubles.NewUnitOfWorkDouble()

	unitOfWork, err := decorator.NewUnitOfWork(inner)
	assert.NoError(t, err)

	// act
	err = unitOfWork.Commit(ctx)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.CommitCalls())
}

func Test_UnitOfWork_HandsCommitErrorsThroughUnchanged(t *testing.T) {
	// setup
	ctx := context.Background()
	expectedErr := errors.New("commit rejected")
	inner := testdoubles.NewUnitOfWorkDouble().FailWith(expectedErr)

	unitOfWork, err := decorator.NewUnitOfWork(inner)
	assert.NoError(t, err)

	// act
	err = unitOfWork.Commit(ctx)

	// assert
	assert.Same(t, expectedErr, err)
}

func Test_Unwrap_ReturnsTheWrappedInstance(t *testing.T) {
	// setup
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]()
	innerUnitOfWork := testdoubles.NewUnitOfWorkDouble()

	query, err := decorator.NewQuery[string, fixtures.Document](inner)
	assert.NoError(t, err)

	command, err := decorator.NewCommand[string, fixtures.Document](inner)
	assert.NoError(t, err)

	repo, err := decorator.NewRepository[string, fixtures.Document](inner)
	assert.NoError(t, err)

	unitOfWork, err := decorator.NewUnitOfWork(innerUnitOfWork)
	assert.NoError(t, err)

	// assert
	assert.Same(t, inner, query.Unwrap())
	assert.Same(t, inner, command.Unwrap())
	assert.Same(t, inner, repo.Unwrap())
	assert.Same(t, innerUnitOfWork, unitOfWork.Unwrap())
}

func Test_Constructors_RejectNilInner(t *testing.T) {
	tests := []struct {
		name      string
		construct func() (any, error)
	}{
		{
			name: "query",
			construct: func() (any, error) {
				return decorator.NewQuery[string, fixtures.Document](nil)
			},
		},
		{
			name: "command",
			construct: func() (any, error) {
				return decorator.NewCommand[string, fixtures.Document](nil)
			},
		},
		{
			name: "repository",
			construct: func() (any, error) {
				return decorator.NewRepository[string, fixtures.Document](nil)
			},
		},
		{
			name: "unit_of_work",
			construct: func() (any, error) {
				return decorator.NewUnitOfWork(nil)
			},
		},
		{
			name: "async_query",
			construct: func() (any, error) {
				return decorator.NewAsyncQuery[string, fixtures.Document](nil)
			},
		},
		{
			name: "async_command",
			construct: func() (any, error) {
				return decorator.NewAsyncCommand[string, fixtures.Document](nil)
			},
		},
		{
			name: "async_repository",
			construct: func() (any, error) {
				return decorator.NewAsyncRepository[string, fixtures.Document](nil)
			},
		},
		{
			name: "async_unit_of_work",
			construct: func() (any, error) {
				return decorator.NewAsyncUnitOfWork(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			decorated, err := tt.construct()

			// assert
			assert.ErrorIs(t, err, repository.ErrNilInner)
			assert.Nil(t, decorated)
		})
	}
}

func Test_AsyncQuery_ForwardsFuturesFromTheWrappedInstance(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Asynchronously forwarded entry")
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document](document)

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncInner, err := async.NewQuery[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	query, err := decorator.NewAsyncQuery[string, fixtures.Document](asyncInner)
	assert.NoError(t, err)

	// act
	count, err := query.GetCount(ctx).Wait()
	assert.NoError(t, err)

	maybe, err := query.TryGetByID(ctx, document.ID).Wait()
	assert.NoError(t, err)

	// assert
	assert.Equal(t, 1, count)
	assert.True(t, maybe.Found)
	assert.Equal(t, document, maybe.Value)
	assert.Same(t, asyncInner, query.Unwrap())
}

func Test_AsyncCommand_ForwardsFuturesFromTheWrappedInstance(t *testing.T) {
	// setup
	ctx := context.Background()
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncInner, err := async.NewCommand[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	command, err := decorator.NewAsyncCommand[string, fixtures.Document](asyncInner)
	assert.NoError(t, err)

	document := fixtures.NewDocument("Asynchronously written entry")

	// act
	_, err = command.Add(ctx, document).Wait()
	assert.NoError(t, err)

	ok, err := command.TryRemove(ctx, document).Wait()
	assert.NoError(t, err)

	// assert
	assert.True(t, ok)
	assert.Equal(t, 1, inner.CallsTo(testdoubles.OpAdd))
	assert.Equal(t, 1, inner.CallsTo(testdoubles.OpTryRemove))
}

func Test_AsyncUnitOfWork_ForwardsCommitFutures(t *testing.T) {
	// setup
	ctx := context.Background()
	inner := testdoubles.NewUnitOfWorkDouble()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncInner, err := async.NewUnitOfWork(inner, dispatcher)
	assert.NoError(t, err)

	unitOfWork, err := decorator.NewAsyncUnitOfWork(asyncInner)
	assert.NoError(t, err)

	// act
	_, err = unitOfWork.Commit(ctx).Wait()

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.CommitCalls())
}
