package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"` // Unique, enforced by the store

	Address *string `json:"address" db:"address"`
	Phone   *string `json:"phone" db:"phone"`

	// Password holds the bcrypt hash. The raw password is never persisted
	// and the hash never leaves the API.
	Password string `json:"-" db:"password_hash"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
