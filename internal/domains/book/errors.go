package book

import "errors"

var (
	// Validation Errors
	ErrInvalidTitle = errors.New("book title is invalid")

	// Business Rule Errors
	ErrBookNotFound = errors.New("book not found")

	// ErrBookCurrentlyBorrowed guards deletion: a book in the Borrowed
	// state (available=false) cannot be removed while the loan is open.
	ErrBookCurrentlyBorrowed = errors.New("the book is currently borrowed and cannot be deleted")
)

// ToErrorCode converts an error to its API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrBookCurrentlyBorrowed):
		return "BOOK_CURRENTLY_BORROWED"
	case errors.Is(err, ErrInvalidTitle):
		return "INVALID_TITLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return 404
	case errors.Is(err, ErrBookCurrentlyBorrowed):
		return 409
	case errors.Is(err, ErrInvalidTitle):
		return 400
	default:
		return 500
	}
}
