package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/events"
	"library-backend/pkg/database"
)

// bookService implements book.Service.
type bookService struct {
	repo       book.Repository
	authorRepo author.Repository // Cross-domain: resolve-or-create on book creation
	bus        *events.Bus
	tx         database.TxManager
}

func NewBookService(repo book.Repository, authorRepo author.Repository, bus *events.Bus, tx database.TxManager) book.Service {
	return &bookService{
		repo:       repo,
		authorRepo: authorRepo,
		bus:        bus,
		tx:         tx,
	}
}

func (s *bookService) GetAll(ctx context.Context) ([]book.Book, error) {
	return s.repo.GetAll(ctx)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new book. An inline author is resolved by name first:
// when an author with an equal name already exists it is reused, otherwise
// the author row is created alongside the book, both in one transaction.
func (s *bookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created *book.Book
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		entity := req.ToEntity()

		if req.Author != nil {
			resolved, err := s.resolveAuthor(ctx, req.Author)
			if err != nil {
				return err
			}
			entity.AuthorID = &resolved.ID
			entity.Author = resolved
		}

		var err error
		created, err = s.repo.Create(ctx, entity)
		if err != nil {
			return err
		}
		created.Author = entity.Author
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// resolveAuthor suppresses duplicate author rows: the name-only comparison
// is the only equality the author domain defines for this purpose.
func (s *bookService) resolveAuthor(ctx context.Context, inline *book.InlineAuthor) (*author.Author, error) {
	candidate := inline.ToEntity()

	existing, err := s.authorRepo.GetByName(ctx, inline.Name)
	if err == nil && existing.EqualsByName(candidate) {
		return existing, nil
	}
	if err != nil && !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	created, err := s.authorRepo.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("create author for book: %w", err)
	}
	return created, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(existing)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a book, but only in the Available state: an open loan
// blocks deletion. The cascade (records referencing the book) runs inside
// the same transaction, before the book row is removed.
func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !existing.Available {
		return book.ErrBookCurrentlyBorrowed
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.bus.PublishBookDeleted(ctx, events.BookDeleted{Book: *existing}); err != nil {
			return fmt.Errorf("book delete cascade: %w", err)
		}
		return s.repo.Delete(ctx, id)
	})
}

func (s *bookService) SearchByTitle(ctx context.Context, title string) ([]book.Book, error) {
	return s.repo.SearchByTitle(ctx, title)
}

func (s *bookService) SearchByAuthorName(ctx context.Context, name string) ([]book.Book, error) {
	return s.repo.SearchByAuthorName(ctx, name)
}

func (s *bookService) SearchByISBN(ctx context.Context, isbn string) ([]book.Book, error) {
	return s.repo.SearchByISBN(ctx, isbn)
}

// DetachAuthorBooks is the AuthorDeleted cascade handler: every book
// referencing the deleted author gets its author reference cleared and is
// persisted. Runs in the author deletion's transaction, so a failed save
// rolls the whole deletion back.
func (s *bookService) DetachAuthorBooks(ctx context.Context, deleted author.Author) error {
	books, err := s.repo.FindByAuthor(ctx, deleted.ID)
	if err != nil {
		return fmt.Errorf("find books by author: %w", err)
	}

	for i := range books {
		books[i].AuthorID = nil
		books[i].Author = nil
		if _, err := s.repo.Update(ctx, &books[i]); err != nil {
			return fmt.Errorf("detach book %s from author: %w", books[i].ID, err)
		}
	}

	return nil
}
