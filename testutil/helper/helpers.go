package helper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/fixtures"
)

// GivenUniqueID generates a unique identity value for testing.
func GivenUniqueID(t testing.TB) string {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id.String()
}

// GivenDocument creates a test document with the supplied title.
func GivenDocument(t testing.TB, title string) fixtures.Document {
	t.Helper()

	return fixtures.NewDocument(title)
}

// GivenDocuments creates the requested number of test documents with
// distinct titles.
func GivenDocuments(t testing.TB, numDocuments int) []fixtures.Document {
	t.Helper()

	documents := make([]fixtures.Document, 0, numDocuments)
	for i := 0; i < numDocuments; i++ {
		documents = append(documents, fixtures.NewDocument(fmt.Sprintf("Document %d", i+1)))
	}

	return documents
}

// GivenStoredDocuments creates the requested number of test documents and
// adds them to the supplied command side.
func GivenStoredDocuments(
	t testing.TB,
	ctx context.Context, //nolint:revive
	commands repository.Command[string, fixtures.Document],
	numDocuments int,
) []fixtures.Document {

	documents := GivenDocuments(t, numDocuments)
	for _, document := range documents {
		err := commands.Add(ctx, document)
		assert.NoError(t, err, "error in arranging test data")
	}

	return documents
}
