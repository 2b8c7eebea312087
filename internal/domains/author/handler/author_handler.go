package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/response"
)

// Handler - HTTP handler for the Author domain
type Handler struct {
	service author.Service
}

// NewHandler - Constructor with DI
func NewHandler(service author.Service) *Handler {
	return &Handler{service: service}
}

// ListAuthors - GET /v1/authors
func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*author.AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].ToResponse())
	}
	response.Success(c, http.StatusOK, out)
}

// GetAuthor - GET /v1/authors/:id
func (h *Handler) GetAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a.ToResponse())
}

// CreateAuthor - POST /v1/authors
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req author.CreateAuthorRequest
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

// UpdateAuthor - PUT /v1/authors/:id
func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	var req author.UpdateAuthorRequest
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

// DeleteAuthor - DELETE /v1/authors/:id
func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
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
	response.ErrorResponse(c, author.ToHTTPStatus(err), author.ToErrorCode(err), err.Error())
}
