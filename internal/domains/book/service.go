package book

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
)

// Service defines business logic for the Book domain, including the
// availability side of the lending rules: books move Available -> Borrowed
// through record creation only, and nothing in the system performs the
// reverse transition automatically.
type Service interface {
	// GetAll lists every book.
	GetAll(ctx context.Context) ([]Book, error)

	// GetByID retrieves a book.
	// Errors: ErrBookNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// Create stores a new book. When the request carries an inline
	// author, an existing author with an equal name is reused instead of
	// inserting a duplicate; otherwise the author is created alongside.
	Create(ctx context.Context, req *CreateBookRequest) (*Book, error)

	// Update overwrites title, author reference, isbn and publication
	// date. The availability flag is not touched here.
	// Errors: ErrBookNotFound
	Update(ctx context.Context, id uuid.UUID, req *UpdateBookRequest) (*Book, error)

	// Delete removes a book. Only permitted in the Available state; while
	// a loan is open the call fails with ErrBookCurrentlyBorrowed. Before
	// the row goes away, subscribed cleanup handlers run in the same
	// transaction: borrowing records referencing the book are deleted.
	// Errors: ErrBookNotFound, ErrBookCurrentlyBorrowed
	Delete(ctx context.Context, id uuid.UUID) error

	// SearchByTitle / SearchByAuthorName / SearchByISBN are substring
	// lookups with no side effects.
	SearchByTitle(ctx context.Context, title string) ([]Book, error)
	SearchByAuthorName(ctx context.Context, name string) ([]Book, error)
	SearchByISBN(ctx context.Context, isbn string) ([]Book, error)

	// DetachAuthorBooks clears the author reference on every book that
	// references the deleted author. Runs as a cascade handler inside the
	// author deletion's transaction.
	DetachAuthorBooks(ctx context.Context, deleted author.Author) error
}
