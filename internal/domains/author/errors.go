package author

import "errors"

var (
	// Validation Errors
	ErrInvalidName = errors.New("author name is invalid")

	// Business Rule Errors
	ErrAuthorNotFound = errors.New("author not found")
)

// ToErrorCode converts an error to its API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrInvalidName):
		return "INVALID_NAME"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrInvalidName):
		return 400
	default:
		return 500
	}
}
