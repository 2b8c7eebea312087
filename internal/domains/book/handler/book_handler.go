package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/shared/response"
)

// Handler - HTTP handler for the Book domain
type Handler struct {
	service book.Service
}

// NewHandler - Constructor with DI
func NewHandler(service book.Service) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /v1/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(books))
}

// SearchBooks - GET /v1/books/search?title=|author=|isbn=
// Exactly one of the query parameters drives the lookup; title wins over
// author, author over isbn when several are given.
func (h *Handler) SearchBooks(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		books []book.Book
		err   error
	)
	switch {
	case c.Query("title") != "":
		books, err = h.service.SearchByTitle(ctx, c.Query("title"))
	case c.Query("author") != "":
		books, err = h.service.SearchByAuthorName(ctx, c.Query("author"))
	case c.Query("isbn") != "":
		books, err = h.service.SearchByISBN(ctx, c.Query("isbn"))
	default:
		response.BadRequest(c, "one of title, author or isbn is required")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(books))
}

// GetBook - GET /v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b.ToResponse())
}

// CreateBook - POST /v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req book.CreateBookRequest
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

// UpdateBook - PUT /v1/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req book.UpdateBookRequest
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

// DeleteBook - DELETE /v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toResponses(books []book.Book) []*book.BookResponse {
	out := make([]*book.BookResponse, 0, len(books))
	for i := range books {
		out = append(out, books[i].ToResponse())
	}
	return out
}

func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verrs)
		return
	}
	response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
}
