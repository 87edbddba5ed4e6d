package core

import (
	"github.com/google/uuid"
)

// Book is the entity managed by the example application: a small value type
// with a uuid string identity.
type Book struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags,omitempty"`
	Available bool     `json:"available"`
}

// Identity returns the identity the book is stored under.
func (b Book) Identity() string {
	return b.ID
}

// NewBook creates an available Book with a fresh uuid identity.
func NewBook(title, author string) Book {
	return Book{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Title:     title,
		Author:    author,
		Available: true,
	}
}

// WithID returns a copy of b stored under the given identity, for scenarios
// that need deterministic identities.
func (b Book) WithID(id string) Book {
	b.ID = id

	return b
}

// Borrowed returns a copy of b marked as lent out.
func (b Book) Borrowed() Book {
	b.Available = false

	return b
}

// Returned returns a copy of b marked as available again.
func (b Book) Returned() Book {
	b.Available = true

	return b
}
