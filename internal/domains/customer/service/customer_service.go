package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/customer"
	"library-backend/internal/events"
	"library-backend/pkg/database"
)

// bcryptCost 12: balance between security and login latency.
const bcryptCost = 12

// customerService implements customer.Service.
type customerService struct {
	repo customer.Repository
	bus  *events.Bus
	tx   database.TxManager
}

func NewCustomerService(repo customer.Repository, bus *events.Bus, tx database.TxManager) customer.Service {
	return &customerService{
		repo: repo,
		bus:  bus,
		tx:   tx,
	}
}

func (s *customerService) GetAll(ctx context.Context) ([]customer.Customer, error) {
	return s.repo.GetAll(ctx)
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) Create(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	entity := &customer.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Phone:    req.Phone,
		Password: string(hash),
	}

	// The unique index on email is the source of truth; the repository
	// translates its violation into ErrEmailAlreadyExists.
	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Address = req.Address
	existing.Phone = req.Phone

	// An empty password keeps the stored hash; a new one is re-hashed so
	// a raw password never reaches the store.
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		existing.Password = string(hash)
	}

	return s.repo.Update(ctx, existing)
}

// Delete publishes CustomerDeleted and removes the customer inside one
// transaction: the customer's borrowing records are gone by the time the
// call reports success, or nothing changed at all.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.bus.PublishCustomerDeleted(ctx, events.CustomerDeleted{Customer: *existing}); err != nil {
			return fmt.Errorf("customer delete cascade: %w", err)
		}
		return s.repo.Delete(ctx, id)
	})
}
