package customer

import "errors"

var (
	// Not Found
	ErrCustomerNotFound = errors.New("customer not found")

	// Conflict
	ErrEmailAlreadyExists = errors.New("email must be unique")

	// Validation
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidPhone = errors.New("invalid phone number format")
)

// ToErrorCode converts an error to its API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		return "CUSTOMER_NOT_FOUND"
	case errors.Is(err, ErrEmailAlreadyExists):
		return "DUPLICATE_EMAIL"
	case errors.Is(err, ErrInvalidEmail):
		return "INVALID_EMAIL"
	case errors.Is(err, ErrInvalidPhone):
		return "INVALID_PHONE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		return 404
	case errors.Is(err, ErrEmailAlreadyExists):
		return 409
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrInvalidPhone):
		return 400
	default:
		return 500
	}
}
