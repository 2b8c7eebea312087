package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for the Book domain. All methods honor a
// transaction carried in ctx.
type Repository interface {
	// Create inserts a new book.
	Create(ctx context.Context, book *Book) (*Book, error)

	// GetByID retrieves a book with its author resolved.
	// Returns ErrBookNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// GetAll retrieves every book with authors resolved.
	GetAll(ctx context.Context) ([]Book, error)

	// Update overwrites an existing book's fields, including the
	// availability flag and the nullable author reference.
	// Returns ErrBookNotFound if it does not exist.
	Update(ctx context.Context, book *Book) (*Book, error)

	// Delete removes a book by id.
	// Returns ErrBookNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks existence without fetching the row.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkBorrowed flips the book from Available to Borrowed with a
	// conditional write: it only succeeds while available is still true.
	// Returns (false, nil) when a concurrent borrower already won the
	// flag, so at most one caller ever observes the transition.
	// Returns ErrBookNotFound if the book does not exist at all.
	MarkBorrowed(ctx context.Context, id uuid.UUID) (bool, error)

	// FindByAuthor returns the books referencing an author.
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]Book, error)

	// SearchByTitle returns books whose title contains the fragment.
	SearchByTitle(ctx context.Context, title string) ([]Book, error)

	// SearchByAuthorName returns books whose author's name contains the
	// fragment.
	SearchByAuthorName(ctx context.Context, name string) ([]Book, error)

	// SearchByISBN returns books whose isbn contains the fragment.
	SearchByISBN(ctx context.Context, isbn string) ([]Book, error)
}
