package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/events"
	"library-backend/pkg/database"
)

// authorService implements author.Service.
type authorService struct {
	repo author.Repository
	bus  *events.Bus
	tx   database.TxManager
}

func NewAuthorService(repo author.Repository, bus *events.Bus, tx database.TxManager) author.Service {
	return &authorService{
		repo: repo,
		bus:  bus,
		tx:   tx,
	}
}

func (s *authorService) GetAll(ctx context.Context) ([]author.Author, error) {
	return s.repo.GetAll(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	return created, nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(existing)

	return s.repo.Update(ctx, existing)
}

// Delete publishes AuthorDeleted and removes the author inside one
// transaction. Handlers see the author row still present while they run;
// their writes are durable by the time the call returns. A second delete of
// the same id fails the initial fetch with ErrAuthorNotFound.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.bus.PublishAuthorDeleted(ctx, events.AuthorDeleted{Author: *existing}); err != nil {
			return fmt.Errorf("author delete cascade: %w", err)
		}
		return s.repo.Delete(ctx, id)
	})
}
