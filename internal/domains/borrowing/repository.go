package borrowing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines data access for borrowing records. All methods honor a
// transaction carried in ctx.
type Repository interface {
	// Create inserts a new record. The unique index on
	// (customer_id, book_id, borrow_date) backs the duplicate rule;
	// a violation comes back as ErrDuplicateRecord.
	Create(ctx context.Context, record *BorrowingRecord) (*BorrowingRecord, error)

	// GetByID retrieves a record by id.
	// Returns ErrRecordNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*BorrowingRecord, error)

	// GetAll retrieves every record.
	GetAll(ctx context.Context) ([]BorrowingRecord, error)

	// Update overwrites customer, book and both dates.
	// Returns ErrRecordNotFound if it does not exist.
	Update(ctx context.Context, record *BorrowingRecord) (*BorrowingRecord, error)

	// Delete removes a record by id.
	// Returns ErrRecordNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks existence without fetching the row.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// FindByCustomerBookAndBorrowDate looks up the record for an exact
	// (customer, book, borrow date) triple.
	// Returns ErrRecordNotFound on a miss.
	FindByCustomerBookAndBorrowDate(ctx context.Context, customerID, bookID uuid.UUID, borrowDate time.Time) (*BorrowingRecord, error)

	// FindByCustomer returns every record referencing a customer.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]BorrowingRecord, error)

	// FindByBook returns every record referencing a book.
	FindByBook(ctx context.Context, bookID uuid.UUID) ([]BorrowingRecord, error)

	// DeleteByCustomer removes every record referencing a customer.
	// Deleting zero rows is not an error.
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error

	// DeleteByBook removes every record referencing a book.
	DeleteByBook(ctx context.Context, bookID uuid.UUID) error
}
