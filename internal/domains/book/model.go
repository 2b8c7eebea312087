package book

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
)

// Book is the core Book entity.
//
// Available is the single piece of state the lending subsystem mutates:
// false while an open borrowing record references the book. A book with
// Available=false cannot be deleted.
type Book struct {
	ID uuid.UUID `json:"id" db:"id"`

	Title string `json:"title" db:"title"` // Required

	// AuthorID is nullable: deleting the author clears the reference
	// instead of deleting the book.
	AuthorID *uuid.UUID     `json:"author_id" db:"author_id"`
	Author   *author.Author `json:"author,omitempty" db:"-"` // Resolved on read paths that join

	ISBN            *string    `json:"isbn" db:"isbn"`
	PublicationDate *time.Time `json:"publication_date" db:"publication_date"` // Must not be in the future
	Genre           *string    `json:"genre" db:"genre"`

	Available bool `json:"available" db:"available"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
