package postgresengine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	. "github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/helper"                        //nolint:revive
	. "github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/postgresengine/postgreswrapper" //nolint:revive
)

func Test_GetCount_When_NoEntityIsStored(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)

	// act
	count, err := store.GetCount(ctxWithTimeout)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func Test_GetCount_When_SomeEntitiesAreStored(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	GivenStoredDocuments(t, ctxWithTimeout, store, 3)

	// act
	count, err := store.GetCount(ctxWithTimeout)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func Test_Add_Then_GetByID_ReturnsTheStoredEntity(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Operations Handbook")

	// act
	err := store.Add(ctxWithTimeout, document)

	// assert
	assert.NoError(t, err)

	loaded, err := store.GetByID(ctxWithTimeout, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, document, loaded)
}

func Test_StoredPayload_SurvivesTheRoundTripWithTags(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Release Notes").WithTags("draft", "internal")

	// act
	err := store.Add(ctxWithTimeout, document)

	// assert
	assert.NoError(t, err)

	loaded, err := store.GetByID(ctxWithTimeout, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, document, loaded, "the full payload should survive the jsonb round trip")
}

func Test_Add_When_TheIdentityIsAlreadyTaken(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Operations Handbook")
	err := store.Add(ctxWithTimeout, document)
	assert.NoError(t, err, "error in arranging test data")

	conflicting := document.WithTitle("Operations Handbook, Second Edition")

	// act
	err = store.Add(ctxWithTimeout, conflicting)

	// assert
	assert.ErrorIs(t, err, repository.ErrEntityAlreadyExists)

	loaded, err := store.GetByID(ctxWithTimeout, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, document, loaded, "the stored state should be untouched by a rejected insert")
}

func Test_GetByID_When_NoEntityIsStoredUnderTheID(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)

	// act
	loaded, err := store.GetByID(ctxWithTimeout, GivenUniqueID(t))

	// assert
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)
	assert.Zero(t, loaded)
}

func Test_TryGetByID_ReportsPresenceWithoutAnError(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Operations Handbook")
	err := store.Add(ctxWithTimeout, document)
	assert.NoError(t, err, "error in arranging test data")

	// act + assert
	loaded, found, err := store.TryGetByID(ctxWithTimeout, document.ID)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, document, loaded)

	missing, found, err := store.TryGetByID(ctxWithTimeout, GivenUniqueID(t))
	assert.NoError(t, err, "absence should be a normal outcome, not an error")
	assert.False(t, found)
	assert.Zero(t, missing)
}

func Test_GetAll_ReturnsAllStoredEntities(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	documents := GivenStoredDocuments(t, ctxWithTimeout, store, 4)

	// act
	loaded, err := store.GetAll(ctxWithTimeout)

	// assert
	assert.NoError(t, err)
	assert.Len(t, loaded, 4)
	assert.ElementsMatch(t, documents, loaded)
}

func Test_AddOrUpdate_InsertsNewAndReplacesStoredState(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Style Guide")

	// act + assert
	err := store.AddOrUpdate(ctxWithTimeout, document)
	assert.NoError(t, err, "an unknown identity should be inserted")

	revised := document.WithTitle("Style Guide, Revised")
	err = store.AddOrUpdate(ctxWithTimeout, revised)
	assert.NoError(t, err, "a taken identity should be replaced")

	loaded, err := store.GetByID(ctxWithTimeout, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, revised, loaded)

	count, err := store.GetCount(ctxWithTimeout)
	assert.NoError(t, err)
	assert.Equal(t, 1, count, "the upsert should not create a second row")
}

func Test_Update_When_TheEntityIsStored(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Style Guide")
	err := store.Add(ctxWithTimeout, document)
	assert.NoError(t, err, "error in arranging test data")

	revised := document.WithTitle("Style Guide, Revised")

	// act
	err = store.Update(ctxWithTimeout, revised)

	// assert
	assert.NoError(t, err)

	loaded, err := store.GetByID(ctxWithTimeout, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, revised, loaded)
}

func Test_Update_When_NoEntityIsStoredUnderTheIdentity(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Style Guide")

	// act
	err := store.Update(ctxWithTimeout, document)

	// assert
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)
}

func Test_Remove_DeletesTheStoredEntity(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Meeting Minutes")
	err := store.Add(ctxWithTimeout, document)
	assert.NoError(t, err, "error in arranging test data")

	// act
	err = store.Remove(ctxWithTimeout, document)

	// assert
	assert.NoError(t, err)

	_, found, err := store.TryGetByID(ctxWithTimeout, document.ID)
	assert.NoError(t, err)
	assert.False(t, found)
}

func Test_Remove_When_NoEntityIsStoredUnderTheIdentity(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)

	// act
	err := store.Remove(ctxWithTimeout, GivenDocument(t, "Meeting Minutes"))

	// assert
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)
}

func Test_RemoveByID_When_NoEntityIsStoredUnderTheID(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)

	// act
	err := store.RemoveByID(ctxWithTimeout, GivenUniqueID(t))

	// assert
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)
}

//nolint:funlen
func Test_TryWrites_ReportTheirOutcomeAsAFlag(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	document := GivenDocument(t, "Incident Report")

	// act + assert
	ok, err := store.TryAdd(ctxWithTimeout, document)
	assert.NoError(t, err)
	assert.True(t, ok, "a free identity should be inserted")

	ok, err = store.TryAdd(ctxWithTimeout, document.WithTitle("Incident Report, Duplicate"))
	assert.NoError(t, err, "a taken identity should be a normal false outcome")
	assert.False(t, ok)

	revised := document.WithTitle("Incident Report, Amended")
	ok, err = store.TryUpdate(ctxWithTimeout, revised)
	assert.NoError(t, err)
	assert.True(t, ok)

	loaded, err := store.GetByID(ctxWithTimeout, document.ID)
	assert.NoError(t, err)
	assert.Equal(t, revised, loaded, "the duplicate insert should not have replaced the stored state")

	ok, err = store.TryUpdate(ctxWithTimeout, GivenDocument(t, "Unknown"))
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.TryRemove(ctxWithTimeout, revised)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.TryRemove(ctxWithTimeout, revised)
	assert.NoError(t, err, "removing an absent entity should be a normal false outcome")
	assert.False(t, ok)

	other := GivenDocument(t, "Postmortem")
	ok, err = store.TryAdd(ctxWithTimeout, other)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.TryRemoveByID(ctxWithTimeout, other.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.TryRemoveByID(ctxWithTimeout, other.ID)
	assert.NoError(t, err)
	assert.False(t, ok)

	count, err := store.GetCount(ctxWithTimeout)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func Test_ConcurrentWriters_DoNotInterfere(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	CleanUp(t, wrapper)
	documents := GivenDocuments(t, 10)

	// act
	var wg sync.WaitGroup
	errs := make([]error, len(documents))

	for i, document := range documents {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = store.Add(ctxWithTimeout, document)
		}()
	}

	wg.Wait()

	// assert
	for i, err := range errs {
		assert.NoError(t, err, "writer %d should succeed", i)
	}

	count, err := store.GetCount(ctxWithTimeout)
	assert.NoError(t, err)
	assert.Equal(t, len(documents), count)
}
