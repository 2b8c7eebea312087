package author

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic for the Author domain.
type Service interface {
	// GetAll lists every author.
	GetAll(ctx context.Context) ([]Author, error)

	// GetByID retrieves an author.
	// Errors: ErrAuthorNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// Create stores a new author. Name uniqueness is deliberately not
	// enforced here; duplicate suppression only happens on the book
	// creation path via EqualsByName.
	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)

	// Update overwrites name, birth date and nationality.
	// Errors: ErrAuthorNotFound
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorRequest) (*Author, error)

	// Delete removes the author. Before the row goes away, every
	// subscribed cleanup handler runs in the same transaction: books
	// referencing the author get their author reference cleared. A handler
	// failure rolls the whole deletion back.
	// Errors: ErrAuthorNotFound (also on a second delete of the same id)
	Delete(ctx context.Context, id uuid.UUID) error
}
