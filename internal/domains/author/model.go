package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is the core Author entity, independent of database/API concerns.
type Author struct {
	ID uuid.UUID `json:"id" db:"id"`

	Name string `json:"name" db:"name"` // Required, non-blank

	// Optional details
	BirthDate   *time.Time `json:"birth_date" db:"birth_date"`   // Must be in the past
	Nationality *string    `json:"nationality" db:"nationality"` //

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EqualsByName reports whether two authors carry the same name. This is the
// only equality the system defines for authors besides id identity; it is
// used solely to suppress duplicate author rows when a book arrives with an
// inline author.
func (a *Author) EqualsByName(other *Author) bool {
	if a == nil || other == nil {
		return false
	}
	return a.Name == other.Name
}
