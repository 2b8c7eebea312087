package customer

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic for the Customer domain.
type Service interface {
	// GetAll lists every customer.
	GetAll(ctx context.Context) ([]Customer, error)

	// GetByID retrieves a customer.
	// Errors: ErrCustomerNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// Create stores a new customer with the password bcrypt-hashed. The
	// raw password never reaches the repository.
	// Errors: ErrEmailAlreadyExists
	Create(ctx context.Context, req *CreateCustomerRequest) (*Customer, error)

	// Update overwrites name, email, address and phone. A non-empty
	// password is re-hashed; an empty one leaves the stored hash alone.
	// Errors: ErrCustomerNotFound, ErrEmailAlreadyExists
	Update(ctx context.Context, id uuid.UUID, req *UpdateCustomerRequest) (*Customer, error)

	// Delete removes the customer. Subscribed cleanup handlers run in the
	// same transaction before the row goes away: every borrowing record
	// referencing the customer is deleted. A handler failure rolls the
	// whole deletion back.
	// Errors: ErrCustomerNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
