package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for the Customer domain. All methods honor
// a transaction carried in ctx.
type Repository interface {
	// Create inserts a new customer.
	// Returns ErrEmailAlreadyExists when the unique email constraint fires.
	Create(ctx context.Context, customer *Customer) (*Customer, error)

	// GetByID retrieves a customer by id.
	// Returns ErrCustomerNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// GetAll retrieves every customer.
	GetAll(ctx context.Context) ([]Customer, error)

	// Update overwrites an existing customer's fields.
	// Returns ErrCustomerNotFound or ErrEmailAlreadyExists.
	Update(ctx context.Context, customer *Customer) (*Customer, error)

	// Delete removes a customer by id.
	// Returns ErrCustomerNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks existence without fetching the row.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByEmail checks whether an email is already taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
