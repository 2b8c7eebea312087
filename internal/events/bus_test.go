package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/customer"
)

func TestBus_PublishRunsHandlersInRegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.OnAuthorDeleted(func(ctx context.Context, ev AuthorDeleted) error {
		order = append(order, "first")
		return nil
	})
	bus.OnAuthorDeleted(func(ctx context.Context, ev AuthorDeleted) error {
		order = append(order, "second")
		return nil
	})
	bus.OnAuthorDeleted(func(ctx context.Context, ev AuthorDeleted) error {
		order = append(order, "third")
		return nil
	})

	err := bus.PublishAuthorDeleted(context.Background(), AuthorDeleted{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_PublishStopsAtFirstError(t *testing.T) {
	bus := NewBus()
	boom := errors.New("handler failed")

	var calls []string
	bus.OnBookDeleted(func(ctx context.Context, ev BookDeleted) error {
		calls = append(calls, "first")
		return nil
	})
	bus.OnBookDeleted(func(ctx context.Context, ev BookDeleted) error {
		calls = append(calls, "second")
		return boom
	})
	bus.OnBookDeleted(func(ctx context.Context, ev BookDeleted) error {
		calls = append(calls, "third")
		return nil
	})

	err := bus.PublishBookDeleted(context.Background(), BookDeleted{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, calls, "handlers after the failing one must not run")
}

func TestBus_PublishWithNoHandlersSucceeds(t *testing.T) {
	bus := NewBus()

	assert.NoError(t, bus.PublishAuthorDeleted(context.Background(), AuthorDeleted{}))
	assert.NoError(t, bus.PublishBookDeleted(context.Background(), BookDeleted{}))
	assert.NoError(t, bus.PublishCustomerDeleted(context.Background(), CustomerDeleted{}))
}

func TestBus_HandlersReceiveTheDeletedEntity(t *testing.T) {
	bus := NewBus()

	a := author.Author{Name: "Naguib Mahfouz"}
	b := book.Book{Title: "Palace Walk"}
	cu := customer.Customer{Name: "Mona", Email: "mona@example.com"}

	var gotAuthor author.Author
	var gotBook book.Book
	var gotCustomer customer.Customer

	bus.OnAuthorDeleted(func(ctx context.Context, ev AuthorDeleted) error {
		gotAuthor = ev.Author
		return nil
	})
	bus.OnBookDeleted(func(ctx context.Context, ev BookDeleted) error {
		gotBook = ev.Book
		return nil
	})
	bus.OnCustomerDeleted(func(ctx context.Context, ev CustomerDeleted) error {
		gotCustomer = ev.Customer
		return nil
	})

	require.NoError(t, bus.PublishAuthorDeleted(context.Background(), AuthorDeleted{Author: a}))
	require.NoError(t, bus.PublishBookDeleted(context.Background(), BookDeleted{Book: b}))
	require.NoError(t, bus.PublishCustomerDeleted(context.Background(), CustomerDeleted{Customer: cu}))

	assert.Equal(t, a, gotAuthor)
	assert.Equal(t, b, gotBook)
	assert.Equal(t, cu, gotCustomer)
}
