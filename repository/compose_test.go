package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/async"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/fixtures"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/testdoubles"
)

func Test_Compose_RoutesReadsToTheQuerySide(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Query side entry")
	querySide := testdoubles.NewRepositoryDouble[string, fixtures.Document](document)
	commandSide := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	composed, err := repository.Compose[string, fixtures.Document](querySide, commandSide)
	assert.NoError(t, err)

	// act
	count, err := composed.GetCount(ctx)
	assert.NoError(t, err)

	all, err := composed.GetAll(ctx)
	assert.NoError(t, err)

	loaded, err := composed.GetByID(ctx, document.ID)
	assert.NoError(t, err)

	_, found, err := composed.TryGetByID(ctx, document.ID)
	assert.NoError(t, err)

	// assert
	assert.Equal(t, 1, count)
	assert.Len(t, all, 1)
	assert.Equal(t, document, loaded)
	assert.True(t, found)

	assert.Equal(t, 1, querySide.CallsTo(testdoubles.OpGetCount))
	assert.Equal(t, 1, querySide.CallsTo(testdoubles.OpGetAll))
	assert.Equal(t, 1, querySide.CallsTo(testdoubles.OpGetByID))
	assert.Equal(t, 1, querySide.CallsTo(testdoubles.OpTryGetByID))
	assert.Empty(t, commandSide.Calls())
}

func Test_Compose_RoutesWritesToTheCommandSide(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Command side entry")
	querySide := testdoubles.NewRepositoryDouble[string, fixtures.Document]()
	commandSide := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	composed, err := repository.Compose[string, fixtures.Document](querySide, commandSide)
	assert.NoError(t, err)

	// act
	err = composed.Add(ctx, document)
	assert.NoError(t, err)

	err = composed.AddOrUpdate(ctx, document.WithTitle("Command side entry, revised"))
	assert.NoError(t, err)

	ok, err := composed.TryRemove(ctx, document)
	assert.NoError(t, err)
	assert.True(t, ok)

	// assert
	assert.Equal(t, 1, commandSide.CallsTo(testdoubles.OpAdd))
	assert.Equal(t, 1, commandSide.CallsTo(testdoubles.OpAddOrUpdate))
	assert.Equal(t, 1, commandSide.CallsTo(testdoubles.OpTryRemove))
	assert.Empty(t, querySide.Calls())
	assert.Equal(t, 0, commandSide.StoredCount())
}

func Test_Compose_WithNilQuerySide_ReturnsError(t *testing.T) {
	// setup
	commandSide := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	// act
	composed, err := repository.Compose[string, fixtures.Document](nil, commandSide)

	// assert
	assert.ErrorIs(t, err, repository.ErrNilQuery)
	assert.Nil(t, composed)
}

func Test_Compose_WithNilCommandSide_ReturnsError(t *testing.T) {
	// setup
	querySide := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	// act
	composed, err := repository.Compose[string, fixtures.Document](querySide, nil)

	// assert
	assert.ErrorIs(t, err, repository.ErrNilCommand)
	assert.Nil(t, composed)
}

func Test_ComposeAsync_RoutesOperationsToTheMatchingSide(t *testing.T) {
	// setup
	ctx := context.Background()
	document := fixtures.NewDocument("Asynchronously composed entry")
	querySide := testdoubles.NewRepositoryDouble[string, fixtures.Document](document)
	commandSide := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncQuery, err := async.NewQuery[string, fixtures.Document](querySide, dispatcher)
	assert.NoError(t, err)

	asyncCommand, err := async.NewCommand[string, fixtures.Document](commandSide, dispatcher)
	assert.NoError(t, err)

	composed, err := repository.ComposeAsync[string, fixtures.Document](asyncQuery, asyncCommand)
	assert.NoError(t, err)

	// act
	count, err := composed.GetCount(ctx).Wait()
	assert.NoError(t, err)

	_, addErr := composed.Add(ctx, fixtures.NewDocument("Another entry")).Wait()
	assert.NoError(t, addErr)

	// assert
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, querySide.CallsTo(testdoubles.OpGetCount))
	assert.Equal(t, 1, commandSide.CallsTo(testdoubles.OpAdd))
	assert.Equal(t, 1, commandSide.StoredCount())
}

func Test_ComposeAsync_WithNilSide_ReturnsError(t *testing.T) {
	// setup
	inner := testdoubles.NewRepositoryDouble[string, fixtures.Document]()

	dispatcher, err := async.NewDispatcher()
	assert.NoError(t, err)
	defer dispatcher.Close()

	asyncQuery, err := async.NewQuery[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	asyncCommand, err := async.NewCommand[string, fixtures.Document](inner, dispatcher)
	assert.NoError(t, err)

	tests := []struct {
		name        string
		query       repository.AsyncQuery[string, fixtures.Document]
		command     repository.AsyncCommand[string, fixtures.Document]
		expectedErr error
	}{
		{
			name:        "nil_query_side_is_rejected",
			query:       nil,
			command:     asyncCommand,
			expectedErr: repository.ErrNilQuery,
		},
		{
			name:        "nil_command_side_is_rejected",
			query:       asyncQuery,
			command:     nil,
			expectedErr: repository.ErrNilCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			composed, err := repository.ComposeAsync[string, fixtures.Document](tt.query, tt.command)

			// assert
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, composed)
		})
	}
}
