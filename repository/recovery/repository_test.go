package recovery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/async"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/recovery"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/fixtures"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/testdoubles"
)

func Test_Repository_AppliesReadAndWriteRecoveryRules(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Entry behind an offline backend")
	errBackendOffline := errors.New("backend offline")
	failure := errors.Join(errBackendOffline, errors.New("dial tcp: connection refused"))

	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetByID, failure).
		FailWith(testdoubles.OpTryAdd, failure)

	repo, err := recovery.NewRepository[string, fixtures.Document](inner, errBackendOffline, alwaysRecover)
	assert.NoError(t, err)

	// act
	entity, err := repo.GetByID(ctx, document.ID)
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)
	assert.Zero(t, entity)

	done, err := repo.TryAdd(ctx, document)

	// assert
	assert.NoError(t, err)
	assert.False(t, done)
}

func Test_Repository_LeavesUnaffectedOperationsAlone(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Reachable entry")
	errBackendOffline := errors.New("backend offline")

	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document](document)

	repo, err := recovery.NewRepository[string, fixtures.Document](inner, errBackendOffline, alwaysRecover)
	assert.NoError(t, err)

	// act
	count, err := repo.GetCount(ctx)
	assert.NoError(t, err)

	loaded, err := repo.GetByID(ctx, document.ID)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, document, loaded)
}

func Test_NewRepository_ValidatesItsDependencies(t *testing.T) {
	// setup
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]()
	errBackendOffline := errors.New("backend offline")

	// act + assert
	repo, err := recovery.NewRepository[string, fixtures.Document](nil, errBackendOffline, alwaysRecover)
	assert.ErrorIs(t, err, repository.ErrNilInner)
	assert.Nil(t, repo)

	repo, err = recovery.NewRepository[string, fixtures.Document](inner, nil, alwaysRecover)
	assert.ErrorIs(t, err, recovery.ErrNilErrorKind)
	assert.Nil(t, repo)

	repo, err = recovery.NewRepository[string, fixtures.Document](inner, errBackendOffline, nil)
	assert.ErrorIs(t, err, recovery.ErrNilPredicate)
	assert.Nil(t, repo)
}

func Test_AsyncRepository_AppliesReadAndWriteRecoveryRules(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Entry behind an offline backend")
	errBackendOffline := errors.New("backend offline")
	failure := errors.Join(errBackendOffline, errors.New("dial tcp: connection refused"))

	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetByID, failure).
		FailWith(testdoubles.OpTryAdd, failure)

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncInner, err := async.NewRepository[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	repo, err := recovery.NewAsyncRepository[string, fixtures.Document](asyncInner, errBackendOffline, alwaysRecover)
	assert.NoError(t, err)

	// act
	_, err = repo.GetByID(ctx, document.ID).Wait()
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)

	done, err := repo.TryAdd(ctx, document).Wait()

	// assert
	assert.NoError(t, err)
	assert.False(t, done)
}
