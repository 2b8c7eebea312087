package borrowing

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/customer"
)

// Service is the lending service: it enforces the borrow rules and keeps
// the book availability flag and record existence in agreement.
type Service interface {
	// GetAll lists every borrowing record.
	GetAll(ctx context.Context) ([]BorrowingRecord, error)

	// GetByID retrieves a record.
	// Errors: ErrRecordNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*BorrowingRecord, error)

	// Create validates and stores a new loan:
	//  1. customer must exist        -> customer.ErrCustomerNotFound
	//  2. book must exist            -> book.ErrBookNotFound
	//  3. book must be available     -> ErrBookAlreadyBorrowed
	//  4. no record may exist for the same (customer, book, borrow date)
	//     triple                     -> ErrDuplicateRecord
	// On success the book is flipped to unavailable and the record
	// persisted in one transaction; if either write fails nothing is
	// left behind. Two concurrent calls against one available book
	// serialize on the flag: the loser fails with ErrBookAlreadyBorrowed.
	Create(ctx context.Context, req *CreateBorrowingRequest) (*BorrowingRecord, error)

	// Update overwrites customer, book and both dates. It deliberately
	// does NOT re-validate availability or the duplicate triple - a
	// weaker guarantee than Create, kept to match the observed behavior
	// of the system this one replaces.
	// Errors: ErrRecordNotFound
	Update(ctx context.Context, id uuid.UUID, req *UpdateBorrowingRequest) (*BorrowingRecord, error)

	// Delete removes a record. A record whose return date is still in the
	// future is an open loan and cannot be deleted. Deletion does not
	// restore the book's availability flag.
	// Errors: ErrRecordNotFound, ErrReturnDateInFuture
	Delete(ctx context.Context, id uuid.UUID) error

	// SearchByCustomer / SearchByBook are pure reads.
	SearchByCustomer(ctx context.Context, customerID uuid.UUID) ([]BorrowingRecord, error)
	SearchByBook(ctx context.Context, bookID uuid.UUID) ([]BorrowingRecord, error)

	// RemoveBookRecords deletes every record referencing the deleted
	// book. Runs as a cascade handler inside the book deletion's
	// transaction.
	RemoveBookRecords(ctx context.Context, deleted book.Book) error

	// RemoveCustomerRecords deletes every record referencing the deleted
	// customer. Runs as a cascade handler inside the customer deletion's
	// transaction.
	RemoveCustomerRecords(ctx context.Context, deleted customer.Customer) error
}
