package borrowing

import (
	"errors"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/customer"
)

var (
	// Not Found
	ErrRecordNotFound = errors.New("borrowing record not found")

	// Conflict
	ErrBookAlreadyBorrowed = errors.New("book is already borrowed")
	ErrDuplicateRecord     = errors.New("borrowing record with the same customer, book, and borrow date already exists")
	ErrReturnDateInFuture  = errors.New("the return date is still in the future, and the borrowing record cannot be deleted")
)

// ToErrorCode converts an error to its API error code. Lending operations
// surface errors from the customer and book domains too, so those are
// mapped here as well.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return "BORROWING_RECORD_NOT_FOUND"
	case errors.Is(err, ErrBookAlreadyBorrowed):
		return "BOOK_ALREADY_BORROWED"
	case errors.Is(err, ErrDuplicateRecord):
		return "DUPLICATE_BORROWING_RECORD"
	case errors.Is(err, ErrReturnDateInFuture):
		return "RETURN_DATE_IN_FUTURE"
	case errors.Is(err, customer.ErrCustomerNotFound):
		return customer.ToErrorCode(err)
	case errors.Is(err, book.ErrBookNotFound):
		return book.ToErrorCode(err)
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return 404
	case errors.Is(err, ErrBookAlreadyBorrowed),
		errors.Is(err, ErrDuplicateRecord),
		errors.Is(err, ErrReturnDateInFuture):
		return 409
	case errors.Is(err, customer.ErrCustomerNotFound):
		return customer.ToHTTPStatus(err)
	case errors.Is(err, book.ErrBookNotFound):
		return book.ToHTTPStatus(err)
	default:
		return 500
	}
}
