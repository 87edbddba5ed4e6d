package mirror_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/async"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/mirror"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/helper"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/testdoubles"
)

func Test_UnitOfWork_MirrorsCommitOntoTheTap(t *testing.T) {
	// setup
	ctx := context.Background()
	primary := testdoubles.NewUnitOfWorkDouble()
	tap := testdoubles.NewUnitOfWorkDouble()

	unitOfWork, err := mirror.NewUnitOfWork(primary, tap)
	assert.NoError(t, err)

	// act
	err = unitOfWork.Commit(ctx)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, primary.CommitCalls())
	assert.Equal(t, 1, tap.CommitCalls())
}

func Test_UnitOfWork_DoesNotCommitTheTapWhenThePrimaryFails(t *testing.T) {
	// setup
	ctx := context.Background()
	failure := errors.New("commit rejected")
	primary := testdoubles.NewUnitOfWorkDouble().FailWith(failure)
	tap := testdoubles.NewUnitOfWorkDouble()

	unitOfWork, err := mirror.NewUnitOfWork(primary, tap)
	assert.NoError(t, err)

	// act
	err = unitOfWork.Commit(ctx)

	// assert
	assert.Same(t, failure, err)
	assert.Equal(t, 0, tap.CommitCalls())
}

func Test_UnitOfWork_DiscardsTapCommitFailures_AndWarnsThroughTheLogger(t *testing.T) {
	// setup
	ctx := context.Background()
	tapFailure := errors.New("tap commit rejected")
	primary := testdoubles.NewUnitOfWorkDouble()
	tap := testdoubles.NewUnitOfWorkDouble().FailWith(tapFailure)

	logSpy := helper.NewLogHandlerSpy(false)

	unitOfWork, err := mirror.NewUnitOfWork(primary, tap, mirror.WithLogger(logSpy.Logger()))
	assert.NoError(t, err)

	// act
	err = unitOfWork.Commit(ctx)

	// assert
	assert.NoError(t, err, "a tap failure should never reach the caller")
	assert.Equal(t, 1, primary.CommitCalls())
	assert.True(t, logSpy.HasWarnLogWithMessage("mirrored write failed on tap, result discarded").
		WithOperation("commit").
		WithError().
		Assert())
}

func Test_UnitOfWork_ConcurrentMode_CommitsBothSides(t *testing.T) {
	// setup
	ctx := context.Background()
	primary := testdoubles.NewUnitOfWorkDouble()
	tap := testdoubles.NewUnitOfWorkDouble()

	unitOfWork, err := mirror.NewUnitOfWork(primary, tap, mirror.WithMode(mirror.Concurrent))
	assert.NoError(t, err)

	// act
	err = unitOfWork.Commit(ctx)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, primary.CommitCalls())
	assert.Equal(t, 1, tap.CommitCalls())
}

func Test_NewUnitOfWork_ValidatesItsDependencies(t *testing.T) {
	// setup
	primary := testdoubles.NewUnitOfWorkDouble()
	tap := testdoubles.NewUnitOfWorkDouble()

	// act + assert
	unitOfWork, err := mirror.NewUnitOfWork(nil, tap)
	assert.ErrorIs(t, err, repository.ErrNilInner)
	assert.Nil(t, unitOfWork)

	unitOfWork, err = mirror.NewUnitOfWork(primary, nil)
	assert.ErrorIs(t, err, mirror.ErrNilTap)
	assert.Nil(t, unitOfWork)
}

func Test_AsyncUnitOfWork_MirrorsCommitOntoTheTap(t *testing.T) {
	// setup
	ctx := context.Background()
	primary := testdoubles.NewUnitOfWorkDouble()
	tap := testdoubles.NewUnitOfWorkDouble()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncPrimary, err := async.NewUnitOfWork(primary, dispatcher)
	assert.NoError(t, err)

	asyncTap, err := async.NewUnitOfWork(tap, dispatcher)
	assert.NoError(t, err)

	unitOfWork, err := mirror.NewAsyncUnitOfWork(asyncPrimary, asyncTap)
	assert.NoError(t, err)

	// act
	_, err = unitOfWork.Commit(ctx).Wait()

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, primary.CommitCalls())
	assert.Equal(t, 1, tap.CommitCalls())
}
