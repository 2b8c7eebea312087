package borrowing

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/customer"
)

// BorrowingRecord ties a customer to a book for a date range. Records
// reference customers and books by identity, never by ownership: deleting a
// customer or a book deletes its records, deleting a record leaves both
// untouched.
//
// The store enforces that no two records share the same
// (customer, book, borrow date) triple.
type BorrowingRecord struct {
	ID uuid.UUID `json:"id" db:"id"`

	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	BookID     uuid.UUID `json:"book_id" db:"book_id"`

	// Resolved references, populated on read paths and on creation.
	Customer *customer.Customer `json:"customer,omitempty" db:"-"`
	Book     *book.Book         `json:"book,omitempty" db:"-"`

	BorrowDate time.Time `json:"borrow_date" db:"borrow_date"` // Must not be in the future
	ReturnDate time.Time `json:"return_date" db:"return_date"` // Must not be in the past at creation

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
