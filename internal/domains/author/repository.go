package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for the Author domain. All methods honor a
// transaction carried in ctx, so cascade writes and the triggering delete
// share one unit of work.
type Repository interface {
	// Create inserts a new author and returns it with id and timestamps set.
	Create(ctx context.Context, author *Author) (*Author, error)

	// GetByID retrieves an author by id.
	// Returns ErrAuthorNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetByName retrieves an author by exact name. Used for duplicate
	// suppression when a book is created with an inline author.
	// Returns ErrAuthorNotFound if no author carries the name.
	GetByName(ctx context.Context, name string) (*Author, error)

	// GetAll retrieves every author.
	GetAll(ctx context.Context) ([]Author, error)

	// Update overwrites an existing author's fields.
	// Returns ErrAuthorNotFound if it does not exist.
	Update(ctx context.Context, author *Author) (*Author, error)

	// Delete removes an author by id.
	// Returns ErrAuthorNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks existence without fetching the row.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
