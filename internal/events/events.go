// Package events carries deletion side effects between domains. Deleting an
// author, book or customer publishes a typed event on the Bus before the
// entity's own row is removed; subscribed cleanup handlers run synchronously
// inside the same transaction, so the cascade and the delete commit or roll
// back together.
package events

import (
	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/customer"
)

// AuthorDeleted is published by the author service right before the author
// row is removed. The entity still exists in storage while handlers run.
type AuthorDeleted struct {
	Author author.Author
}

// BookDeleted is published by the book service right before the book row is
// removed. Only books in the Available state ever get this far.
type BookDeleted struct {
	Book book.Book
}

// CustomerDeleted is published by the customer service right before the
// customer row is removed.
type CustomerDeleted struct {
	Customer customer.Customer
}
