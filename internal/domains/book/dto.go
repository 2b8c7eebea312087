package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/utils"
)

// InlineAuthor is the optional author payload on book creation. The service
// reuses an existing author with an equal name instead of inserting a
// duplicate row.
type InlineAuthor struct {
	Name        string     `json:"name" binding:"required"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
}

func (r InlineAuthor) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("author name is mandatory"),
			validation.Length(1, 255),
		),
		validation.Field(&r.BirthDate,
			validation.By(utils.DateInPast),
		),
	)
}

// CreateBookRequest - POST /v1/books
type CreateBookRequest struct {
	Title           string        `json:"title" binding:"required"`
	Author          *InlineAuthor `json:"author,omitempty"`
	ISBN            *string       `json:"isbn,omitempty"`
	PublicationDate *time.Time    `json:"publication_date,omitempty"`
	Genre           *string       `json:"genre,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is mandatory"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Author),
		validation.Field(&r.PublicationDate,
			validation.By(utils.DateNotInFuture),
		),
	)
}

// UpdateBookRequest - PUT /v1/books/:id
// Field copy semantics: title, author reference, isbn and publication date
// overwrite the stored values.
type UpdateBookRequest struct {
	Title           string     `json:"title" binding:"required"`
	AuthorID        *uuid.UUID `json:"author_id,omitempty"`
	ISBN            *string    `json:"isbn,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is mandatory"),
			validation.Length(1, 500),
		),
		validation.Field(&r.PublicationDate,
			validation.By(utils.DateNotInFuture),
		),
	)
}

type BookResponse struct {
	ID              uuid.UUID              `json:"id"`
	Title           string                 `json:"title"`
	Author          *author.AuthorResponse `json:"author,omitempty"`
	ISBN            *string                `json:"isbn,omitempty"`
	PublicationDate *time.Time             `json:"publication_date,omitempty"`
	Genre           *string                `json:"genre,omitempty"`
	Available       bool                   `json:"available"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func (b *Book) ToResponse() *BookResponse {
	resp := &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationDate: b.PublicationDate,
		Genre:           b.Genre,
		Available:       b.Available,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Author != nil {
		resp.Author = b.Author.ToResponse()
	}
	return resp
}

func (r *InlineAuthor) ToEntity() *author.Author {
	return &author.Author{
		Name:        r.Name,
		BirthDate:   r.BirthDate,
		Nationality: r.Nationality,
	}
}

func (r *CreateBookRequest) ToEntity() *Book {
	return &Book{
		Title:           r.Title,
		ISBN:            r.ISBN,
		PublicationDate: r.PublicationDate,
		Genre:           r.Genre,
		Available:       true, // New books start in the Available state
	}
}

func (r *UpdateBookRequest) ApplyToEntity(b *Book) {
	b.Title = r.Title
	b.AuthorID = r.AuthorID
	b.ISBN = r.ISBN
	b.PublicationDate = r.PublicationDate
}
