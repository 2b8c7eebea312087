package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/customer"
	"library-backend/internal/shared/response"
)

// Handler - HTTP handler for the Customer domain
type Handler struct {
	service customer.Service
}

// NewHandler - Constructor with DI
func NewHandler(service customer.Service) *Handler {
	return &Handler{service: service}
}

// ListCustomers - GET /v1/customers
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*customer.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, customers[i].ToResponse())
	}
	response.Success(c, http.StatusOK, out)
}

// GetCustomer - GET /v1/customers/:id
func (h *Handler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust.ToResponse())
}

// CreateCustomer - POST /v1/customers
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created.ToResponse())
}

// UpdateCustomer - PUT /v1/customers/:id
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated.ToResponse())
}

// DeleteCustomer - DELETE /v1/customers/:id
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verrs)
		return
	}
	response.ErrorResponse(c, customer.ToHTTPStatus(err), customer.ToErrorCode(err), err.Error())
}
