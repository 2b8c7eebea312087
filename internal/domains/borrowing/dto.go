package borrowing

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/customer"
	"library-backend/internal/shared/utils"
)

// CreateBorrowingRequest - POST /v1/borrowings
type CreateBorrowingRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	BookID     uuid.UUID `json:"book_id" binding:"required"`
	BorrowDate time.Time `json:"borrow_date" binding:"required"`
	ReturnDate time.Time `json:"return_date" binding:"required"`
}

func (r CreateBorrowingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerID,
			validation.Required.Error("customer is required"),
		),
		validation.Field(&r.BookID,
			validation.Required.Error("book is required"),
		),
		validation.Field(&r.BorrowDate,
			validation.Required.Error("borrow date is required"),
			validation.By(utils.DateNotInFuture),
		),
		validation.Field(&r.ReturnDate,
			validation.Required.Error("return date is required"),
			validation.By(utils.DateNotInPast),
		),
	)
}

// UpdateBorrowingRequest - PUT /v1/borrowings/:id
// Field copy semantics: customer, book and both dates overwrite the stored
// values. Availability and duplicate constraints are not re-checked here;
// see Service.Update.
type UpdateBorrowingRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	BookID     uuid.UUID `json:"book_id" binding:"required"`
	BorrowDate time.Time `json:"borrow_date" binding:"required"`
	ReturnDate time.Time `json:"return_date" binding:"required"`
}

func (r UpdateBorrowingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerID,
			validation.Required.Error("customer is required"),
		),
		validation.Field(&r.BookID,
			validation.Required.Error("book is required"),
		),
		validation.Field(&r.BorrowDate,
			validation.Required.Error("borrow date is required"),
		),
		validation.Field(&r.ReturnDate,
			validation.Required.Error("return date is required"),
		),
	)
}

type BorrowingResponse struct {
	ID         uuid.UUID                  `json:"id"`
	Customer   *customer.CustomerResponse `json:"customer,omitempty"`
	CustomerID uuid.UUID                  `json:"customer_id"`
	Book       *book.BookResponse         `json:"book,omitempty"`
	BookID     uuid.UUID                  `json:"book_id"`
	BorrowDate time.Time                  `json:"borrow_date"`
	ReturnDate time.Time                  `json:"return_date"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

func (r *BorrowingRecord) ToResponse() *BorrowingResponse {
	resp := &BorrowingResponse{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		BookID:     r.BookID,
		BorrowDate: r.BorrowDate,
		ReturnDate: r.ReturnDate,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Customer != nil {
		resp.Customer = r.Customer.ToResponse()
	}
	if r.Book != nil {
		resp.Book = r.Book.ToResponse()
	}
	return resp
}

func (r *CreateBorrowingRequest) ToEntity() *BorrowingRecord {
	return &BorrowingRecord{
		CustomerID: r.CustomerID,
		BookID:     r.BookID,
		BorrowDate: r.BorrowDate,
		ReturnDate: r.ReturnDate,
	}
}

func (r *UpdateBorrowingRequest) ApplyToEntity(rec *BorrowingRecord) {
	rec.CustomerID = r.CustomerID
	rec.BookID = r.BookID
	rec.BorrowDate = r.BorrowDate
	rec.ReturnDate = r.ReturnDate
}
