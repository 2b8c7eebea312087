package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

// SetupRouter wires middleware and all domain routes.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(gc *gin.Context) {
		if err := c.HealthCheck(gc.Request.Context()); err != nil {
			response.ErrorResponse(gc, http.StatusServiceUnavailable, "UNHEALTHY", err.Error())
			return
		}
		response.Success(gc, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	v1 := router.Group("/api/v1")
	{
		authors := v1.Group("/authors")
		{
			authors.GET("", c.AuthorHandler.ListAuthors)
			authors.GET("/:id", c.AuthorHandler.GetAuthor)
			authors.POST("", c.AuthorHandler.CreateAuthor)
			authors.PUT("/:id", c.AuthorHandler.UpdateAuthor)
			authors.DELETE("/:id", c.AuthorHandler.DeleteAuthor)
		}

		books := v1.Group("/books")
		{
			books.GET("", c.BookHandler.ListBooks)
			books.GET("/search", c.BookHandler.SearchBooks)
			books.GET("/:id", c.BookHandler.GetBook)
			books.POST("", c.BookHandler.CreateBook)
			books.PUT("/:id", c.BookHandler.UpdateBook)
			books.DELETE("/:id", c.BookHandler.DeleteBook)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", c.CustomerHandler.ListCustomers)
			customers.GET("/:id", c.CustomerHandler.GetCustomer)
			customers.POST("", c.CustomerHandler.CreateCustomer)
			customers.PUT("/:id", c.CustomerHandler.UpdateCustomer)
			customers.DELETE("/:id", c.CustomerHandler.DeleteCustomer)
		}

		borrowings := v1.Group("/borrowings")
		{
			borrowings.GET("", c.BorrowingHandler.ListRecords)
			borrowings.GET("/customer/:id", c.BorrowingHandler.ListByCustomer)
			borrowings.GET("/book/:id", c.BorrowingHandler.ListByBook)
			borrowings.GET("/:id", c.BorrowingHandler.GetRecord)
			borrowings.POST("", c.BorrowingHandler.CreateRecord)
			borrowings.PUT("/:id", c.BorrowingHandler.UpdateRecord)
			borrowings.DELETE("/:id", c.BorrowingHandler.DeleteRecord)
		}
	}

	return router
}
