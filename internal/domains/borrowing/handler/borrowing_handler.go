package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/borrowing"
	"library-backend/internal/shared/response"
)

// Handler - HTTP handler for the Borrowing domain
type Handler struct {
	service borrowing.Service
}

// NewHandler - Constructor with DI
func NewHandler(service borrowing.Service) *Handler {
	return &Handler{service: service}
}

// ListRecords - GET /v1/borrowings
func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(records))
}

// GetRecord - GET /v1/borrowings/:id
func (h *Handler) GetRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid borrowing record id")
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec.ToResponse())
}

// CreateRecord - POST /v1/borrowings
func (h *Handler) CreateRecord(c *gin.Context) {
	var req borrowing.CreateBorrowingRequest
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

// UpdateRecord - PUT /v1/borrowings/:id
func (h *Handler) UpdateRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid borrowing record id")
		return
	}

	var req borrowing.UpdateBorrowingRequest
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

// DeleteRecord - DELETE /v1/borrowings/:id
func (h *Handler) DeleteRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid borrowing record id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByCustomer - GET /v1/borrowings/customer/:id
func (h *Handler) ListByCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	records, err := h.service.SearchByCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(records))
}

// ListByBook - GET /v1/borrowings/book/:id
func (h *Handler) ListByBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	records, err := h.service.SearchByBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(records))
}

func toResponses(records []borrowing.BorrowingRecord) []*borrowing.BorrowingResponse {
	out := make([]*borrowing.BorrowingResponse, 0, len(records))
	for i := range records {
		out = append(out, records[i].ToResponse())
	}
	return out
}

func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verrs)
		return
	}
	response.ErrorResponse(c, borrowing.ToHTTPStatus(err), borrowing.ToErrorCode(err), err.Error())
}
