package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/utils"
)

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	Name        string     `json:"name" binding:"required"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is mandatory"),
			validation.Length(1, 255),
		),
		validation.Field(&r.BirthDate,
			validation.By(utils.DateInPast),
		),
	)
}

// UpdateAuthorRequest - PUT /v1/authors/:id
// Field copy semantics: every field overwrites the stored value.
type UpdateAuthorRequest struct {
	Name        string     `json:"name" binding:"required"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is mandatory"),
			validation.Length(1, 255),
		),
		validation.Field(&r.BirthDate,
			validation.By(utils.DateInPast),
		),
	)
}

type AuthorResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToResponse converts an Author entity to its API shape.
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToEntity converts CreateAuthorRequest to an Author entity.
func (r *CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		Name:        r.Name,
		BirthDate:   r.BirthDate,
		Nationality: r.Nationality,
	}
}

// ApplyToEntity copies UpdateAuthorRequest fields onto an existing Author.
func (r *UpdateAuthorRequest) ApplyToEntity(a *Author) {
	a.Name = r.Name
	a.BirthDate = r.BirthDate
	a.Nationality = r.Nationality
}
