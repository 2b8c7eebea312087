package customer

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// phonePattern: starts with "01", followed by two digits from {0, 1, 2, 5},
// then any seven digits - 11 digits total.
var phonePattern = regexp.MustCompile(`^01[0125]{2}\d{7}$`)

// CreateCustomerRequest - POST /v1/customers
type CreateCustomerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password" binding:"required"`
}

func (r CreateCustomerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is mandatory"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Phone,
			validation.Match(phonePattern).Error(
				"phone number must start with '01', followed by two digits from the set {0, 1, 2, 5}, and then any seven digits"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

// UpdateCustomerRequest - PUT /v1/customers/:id
// Field copy semantics. Password is optional: when present it is re-hashed,
// when empty the stored hash is kept.
type UpdateCustomerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password,omitempty"`
}

func (r UpdateCustomerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is mandatory"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Phone,
			validation.Match(phonePattern).Error(
				"phone number must start with '01', followed by two digits from the set {0, 1, 2, 5}, and then any seven digits"),
		),
		validation.Field(&r.Password,
			validation.When(r.Password != "",
				validation.Length(8, 128).Error("password must be 8-128 characters"),
			),
		),
	)
}

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
