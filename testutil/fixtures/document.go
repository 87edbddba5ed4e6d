// Package fixtures provides the entity type shared by the package tests.
package fixtures

import (
	"github.com/google/uuid"
)

// Document is the entity stored in tests: a small value type with a uuid
// string identity.
type Document struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags,omitempty"`
	Revision int      `json:"revision"`
}

// Identity returns the identity the document is stored under.
func (d Document) Identity() string {
	return d.ID
}

// NewDocument creates a Document with a fresh uuid identity at revision 1.
func NewDocument(title string) Document {
	return Document{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Title:    title,
		Revision: 1,
	}
}

// WithTitle returns a copy of d with the given title and the revision
// advanced, for update scenarios.
func (d Document) WithTitle(title string) Document {
	d.Title = title
	d.Revision++

	return d
}

// WithTags returns a copy of d carrying the given tags.
func (d Document) WithTags(tags ...string) Document {
	d.Tags = tags

	return d
}
