package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/events"
)

type stubTx struct{}

func (stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubBookRepo struct {
	book.Repository

	createFn   func(ctx context.Context, b *book.Book) (*book.Book, error)
	getByIDFn  func(ctx context.Context, id uuid.UUID) (*book.Book, error)
	updateFn   func(ctx context.Context, b *book.Book) (*book.Book, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
	byAuthorFn func(ctx context.Context, authorID uuid.UUID) ([]book.Book, error)

	updated []book.Book
}

func (s *stubBookRepo) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	if s.createFn != nil {
		return s.createFn(ctx, b)
	}
	b.ID = uuid.New()
	return b, nil
}

func (s *stubBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, book.ErrBookNotFound
}

func (s *stubBookRepo) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, b)
	}
	s.updated = append(s.updated, *b)
	return b, nil
}

func (s *stubBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubBookRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
	if s.byAuthorFn != nil {
		return s.byAuthorFn(ctx, authorID)
	}
	return nil, nil
}

type stubAuthorRepo struct {
	author.Repository

	getByNameFn func(ctx context.Context, name string) (*author.Author, error)
	createFn    func(ctx context.Context, a *author.Author) (*author.Author, error)

	createCalls int
}

func (s *stubAuthorRepo) GetByName(ctx context.Context, name string) (*author.Author, error) {
	if s.getByNameFn != nil {
		return s.getByNameFn(ctx, name)
	}
	return nil, author.ErrAuthorNotFound
}

func (s *stubAuthorRepo) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	s.createCalls++
	if s.createFn != nil {
		return s.createFn(ctx, a)
	}
	a.ID = uuid.New()
	return a, nil
}

func TestBookService_Create_WithoutAuthor(t *testing.T) {
	repo := &stubBookRepo{}
	authors := &stubAuthorRepo{}
	svc := NewBookService(repo, authors, events.NewBus(), stubTx{})

	created, err := svc.Create(context.Background(), &book.CreateBookRequest{Title: "Zayni Barakat"})
	require.NoError(t, err)

	assert.True(t, created.Available, "a new book starts available")
	assert.Nil(t, created.AuthorID)
	assert.Zero(t, authors.createCalls)
}

func TestBookService_Create_ReusesAuthorWithEqualName(t *testing.T) {
	existing := &author.Author{ID: uuid.New(), Name: "Yusuf Idris"}
	authors := &stubAuthorRepo{
		getByNameFn: func(ctx context.Context, name string) (*author.Author, error) {
			return existing, nil
		},
	}
	svc := NewBookService(&stubBookRepo{}, authors, events.NewBus(), stubTx{})

	created, err := svc.Create(context.Background(), &book.CreateBookRequest{
		Title:  "The Cheapest Nights",
		Author: &book.InlineAuthor{Name: "Yusuf Idris"},
	})
	require.NoError(t, err)

	require.NotNil(t, created.AuthorID)
	assert.Equal(t, existing.ID, *created.AuthorID, "an equal name must reuse the stored author")
	assert.Zero(t, authors.createCalls)
}

func TestBookService_Create_CreatesUnknownAuthor(t *testing.T) {
	authors := &stubAuthorRepo{}
	svc := NewBookService(&stubBookRepo{}, authors, events.NewBus(), stubTx{})

	created, err := svc.Create(context.Background(), &book.CreateBookRequest{
		Title:  "Granada",
		Author: &book.InlineAuthor{Name: "Radwa Ashour"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, authors.createCalls)
	require.NotNil(t, created.Author)
	assert.Equal(t, "Radwa Ashour", created.Author.Name)
}

func TestBookService_Create_RejectsEmptyTitle(t *testing.T) {
	svc := NewBookService(&stubBookRepo{}, &stubAuthorRepo{}, events.NewBus(), stubTx{})

	_, err := svc.Create(context.Background(), &book.CreateBookRequest{Title: ""})
	assert.Error(t, err)
}

func TestBookService_Delete_BorrowedBookIsProtected(t *testing.T) {
	b := &book.Book{ID: uuid.New(), Title: "Midaq Alley", Available: false}

	deleteCalled := false
	repo := &stubBookRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return b, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleteCalled = true
			return nil
		},
	}

	cascadeRan := false
	bus := events.NewBus()
	bus.OnBookDeleted(func(ctx context.Context, ev events.BookDeleted) error {
		cascadeRan = true
		return nil
	})

	svc := NewBookService(repo, &stubAuthorRepo{}, bus, stubTx{})

	err := svc.Delete(context.Background(), b.ID)
	require.ErrorIs(t, err, book.ErrBookCurrentlyBorrowed)
	assert.False(t, deleteCalled)
	assert.False(t, cascadeRan, "the cascade must not fire for a protected book")
}

func TestBookService_Delete_AvailableBookCascades(t *testing.T) {
	b := &book.Book{ID: uuid.New(), Title: "Midaq Alley", Available: true}

	var order []string
	repo := &stubBookRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return b, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "delete")
			return nil
		},
	}

	bus := events.NewBus()
	bus.OnBookDeleted(func(ctx context.Context, ev events.BookDeleted) error {
		order = append(order, "cascade")
		assert.Equal(t, *b, ev.Book)
		return nil
	})

	svc := NewBookService(repo, &stubAuthorRepo{}, bus, stubTx{})

	require.NoError(t, svc.Delete(context.Background(), b.ID))
	assert.Equal(t, []string{"cascade", "delete"}, order)
}

func TestBookService_DetachAuthorBooks(t *testing.T) {
	deleted := author.Author{ID: uuid.New(), Name: "Naguib Mahfouz"}
	owned := []book.Book{
		{ID: uuid.New(), Title: "Palace Walk", AuthorID: &deleted.ID, Author: &deleted},
		{ID: uuid.New(), Title: "Palace of Desire", AuthorID: &deleted.ID, Author: &deleted},
	}

	repo := &stubBookRepo{
		byAuthorFn: func(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
			return owned, nil
		},
	}

	svc := NewBookService(repo, &stubAuthorRepo{}, events.NewBus(), stubTx{})

	require.NoError(t, svc.DetachAuthorBooks(context.Background(), deleted))

	require.Len(t, repo.updated, 2)
	for _, b := range repo.updated {
		assert.Nil(t, b.AuthorID, "the book must survive with its author reference cleared")
		assert.Nil(t, b.Author)
	}
}

func TestBookService_Update_OverwritesFields(t *testing.T) {
	existing := &book.Book{ID: uuid.New(), Title: "Old Title", Available: true}
	repo := &stubBookRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, b *book.Book) (*book.Book, error) {
			return b, nil
		},
	}

	svc := NewBookService(repo, &stubAuthorRepo{}, events.NewBus(), stubTx{})

	authorID := uuid.New()
	updated, err := svc.Update(context.Background(), existing.ID, &book.UpdateBookRequest{
		Title:    "New Title",
		AuthorID: &authorID,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, &authorID, updated.AuthorID)
	assert.True(t, updated.Available, "update must not touch availability")
}
