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

func alwaysRecover(_ error) bool {
	return true
}

func neverRecover(_ error) bool {
	return false
}

func Test_Query_RecoversGetCountFailure_ByReportingZero(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection refused"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetCount, failure)

	query, err := recovery.NewQuery[string, fixtures.Document](inner, repository.ErrQueryFailed, alwaysRecover)
	assert.NoError(t, err)

	// act
	count, err := query.GetCount(ctx)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func Test_Query_RecoversGetAllFailure_ByReportingNoEntities(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection refused"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetAll, failure)

	query, err := recovery.NewQuery[string, fixtures.Document](inner, repository.ErrQueryFailed, alwaysRecover)
	assert.NoError(t, err)

	// act
	all, err := query.GetAll(ctx)

	// assert
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func Test_Query_RecoversGetByIDFailure_ByReportingEntityNotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection refused"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetByID, failure)

	query, err := recovery.NewQuery[string, fixtures.Document](inner, repository.ErrQueryFailed, alwaysRecover)
	assert.NoError(t, err)

	// act
	entity, err := query.GetByID(ctx, "some-id")

	// assert
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)
	assert.NotErrorIs(t, err, repository.ErrQueryFailed, "the original failure should not leak through")
	assert.Zero(t, entity)
}

func Test_Query_RecoversTryGetByIDFailure_ByReportingAbsence(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection refused"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpTryGetByID, failure)

	query, err := recovery.NewQuery[string, fixtures.Document](inner, repository.ErrQueryFailed, alwaysRecover)
	assert.NoError(t, err)

	// act
	entity, found, err := query.TryGetByID(ctx, "some-id")

	// assert
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, entity)
}

func Test_Query_SurfacesRejectedFailuresUnchanged(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection refused"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetCount, failure)

	query, err := recovery.NewQuery[string, fixtures.Document](inner, repository.ErrQueryFailed, neverRecover)
	assert.NoError(t, err)

	// act
	_, err = query.GetCount(ctx)

	// assert
	assert.Same(t, failure, err)
}

func Test_Query_ConsultsThePredicateExactlyOnce_WithTheCompleteFailure(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection refused"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetCount, failure)

	predicateCalls := 0
	var observedErr error
	predicate := func(err error) bool {
		predicateCalls++
		observedErr = err

		return true
	}

	query, err := recovery.NewQuery[string, fixtures.Document](inner, repository.ErrQueryFailed, predicate)
	assert.NoError(t, err)

	// act
	_, err = query.GetCount(ctx)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, predicateCalls)
	assert.Same(t, failure, observedErr, "the predicate should see the complete failure, causes included")
}

func Test_Query_IgnoresFailuresOfOtherKinds(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrExecFailed, errors.New("disk full"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetCount, failure)

	predicateCalls := 0
	predicate := func(_ error) bool {
		predicateCalls++

		return true
	}

	query, err := recovery.NewQuery[string, fixtures.Document](inner, repository.ErrQueryFailed, predicate)
	assert.NoError(t, err)

	// act
	_, err = query.GetCount(ctx)

	// assert
	assert.Same(t, failure, err)
	assert.Equal(t, 0, predicateCalls, "failures of other kinds should never reach the predicate")
}

func Test_Query_PassesSuccessfulReadsThrough(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Untouched entry")
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document](document)

	predicateCalls := 0
	predicate := func(_ error) bool {
		predicateCalls++

		return true
	}

	query, err := recovery.NewQuery[string, fixtures.Document](inner, repository.ErrQueryFailed, predicate)
	assert.NoError(t, err)

	// act
	loaded, err := query.GetByID(ctx, document.ID)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, document, loaded)
	assert.Equal(t, 0, predicateCalls)
}

func Test_NewQuery_ValidatesItsDependencies(t *testing.T) {
	// setup
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	tests := []struct {
		name        string
		inner       repository.Query[string, fixtures.Document]
		kind        error
		predicate   recovery.Predicate
		expectedErr error
	}{
		{
			name:        "nil_inner_is_rejected",
			inner:       nil,
			kind:        repository.ErrQueryFailed,
			predicate:   alwaysRecover,
			expectedErr: repository.ErrNilInner,
		},
		{
			name:        "nil_error_kind_is_rejected",
			inner:       inner,
			kind:        nil,
			predicate:   alwaysRecover,
			expectedErr: recovery.ErrNilErrorKind,
		},
		{
			name:        "nil_predicate_is_rejected",
			inner:       inner,
			kind:        repository.ErrQueryFailed,
			predicate:   nil,
			expectedErr: recovery.ErrNilPredicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			query, err := recovery.NewQuery[string, fixtures.Document](tt.inner, tt.kind, tt.predicate)

			// assert
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, query)
		})
	}
}

func Test_AsyncQuery_RecoversDeclaredReadFailures(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection refused"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetByID, failure).
		FailWith(testdoubles.OpTryGetByID, failure)

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncInner, err := async.NewQuery[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	query, err := recovery.NewAsyncQuery[string, fixtures.Document](asyncInner, repository.ErrQueryFailed, alwaysRecover)
	assert.NoError(t, err)

	// act
	entity, err := query.GetByID(ctx, "some-id").Wait()
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)
	assert.Zero(t, entity)

	maybe, err := query.TryGetByID(ctx, "some-id").Wait()

	// assert
	assert.NoError(t, err)
	assert.False(t, maybe.Found)
	assert.Zero(t, maybe.Value)
}

func Test_AsyncQuery_SurfacesRejectedFailuresUnchanged(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.Join(repository.ErrQueryFailed, errors.New("connection refused"))
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]().
		FailWith(testdoubles.OpGetCount, failure)

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncInner, err := async.NewQuery[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	query, err := recovery.NewAsyncQuery[string, fixtures.Document](asyncInner, repository.ErrQueryFailed, neverRecover)
	assert.NoError(t, err)

	// act
	_, err = query.GetCount(ctx).Wait()

	// assert
	assert.Same(t, failure, err)
}
