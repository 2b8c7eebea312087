package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/borrowing"
	"library-backend/internal/domains/customer"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/database"
)

// borrowingService implements borrowing.Service. It talks to the customer
// and book repositories directly: lending is the one place where the three
// domains meet in a single unit of work.
type borrowingService struct {
	repo         borrowing.Repository
	customerRepo customer.Repository
	bookRepo     book.Repository
	tx           database.TxManager
}

func NewBorrowingService(
	repo borrowing.Repository,
	customerRepo customer.Repository,
	bookRepo book.Repository,
	tx database.TxManager,
) borrowing.Service {
	return &borrowingService{
		repo:         repo,
		customerRepo: customerRepo,
		bookRepo:     bookRepo,
		tx:           tx,
	}
}

func (s *borrowingService) GetAll(ctx context.Context) ([]borrowing.BorrowingRecord, error) {
	return s.repo.GetAll(ctx)
}

func (s *borrowingService) GetByID(ctx context.Context, id uuid.UUID) (*borrowing.BorrowingRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *borrowingService) Create(ctx context.Context, req *borrowing.CreateBorrowingRequest) (*borrowing.BorrowingRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. Customer must exist.
	cust, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	// 2. Book must exist.
	b, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	// 3. Book must be available.
	if !b.Available {
		return nil, borrowing.ErrBookAlreadyBorrowed
	}

	// 4. No record for the same (customer, book, borrow date) triple.
	_, err = s.repo.FindByCustomerBookAndBorrowDate(ctx, req.CustomerID, req.BookID, req.BorrowDate)
	if err == nil {
		return nil, borrowing.ErrDuplicateRecord
	}
	if !errors.Is(err, borrowing.ErrRecordNotFound) {
		return nil, err
	}

	// 5. Flip availability and persist the record as one unit of work.
	// The conditional flip re-checks the flag under the transaction, so
	// of two concurrent borrowers exactly one gets the book; the unique
	// index catches a duplicate triple racing past step 4.
	var created *borrowing.BorrowingRecord
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		flipped, err := s.bookRepo.MarkBorrowed(ctx, b.ID)
		if err != nil {
			return err
		}
		if !flipped {
			return borrowing.ErrBookAlreadyBorrowed
		}

		created, err = s.repo.Create(ctx, req.ToEntity())
		return err
	})
	if err != nil {
		return nil, err
	}

	b.Available = false
	created.Customer = cust
	created.Book = b

	return created, nil
}

// Update overwrites customer, book and both dates without re-running the
// create-path checks. The asymmetry with Create is intentional; see
// borrowing.Service.
func (s *borrowingService) Update(ctx context.Context, id uuid.UUID, req *borrowing.UpdateBorrowingRequest) (*borrowing.BorrowingRecord, error) {
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

func (s *borrowingService) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Open loan: a return date strictly after today blocks deletion.
	today := utils.StartOfDay(time.Now())
	if utils.StartOfDay(rec.ReturnDate).After(today) {
		return borrowing.ErrReturnDateInFuture
	}

	return s.repo.Delete(ctx, id)
}

func (s *borrowingService) SearchByCustomer(ctx context.Context, customerID uuid.UUID) ([]borrowing.BorrowingRecord, error) {
	return s.repo.FindByCustomer(ctx, customerID)
}

func (s *borrowingService) SearchByBook(ctx context.Context, bookID uuid.UUID) ([]borrowing.BorrowingRecord, error) {
	return s.repo.FindByBook(ctx, bookID)
}

// RemoveBookRecords is the BookDeleted cascade handler.
func (s *borrowingService) RemoveBookRecords(ctx context.Context, deleted book.Book) error {
	if err := s.repo.DeleteByBook(ctx, deleted.ID); err != nil {
		return fmt.Errorf("delete records for book %s: %w", deleted.ID, err)
	}
	return nil
}

// RemoveCustomerRecords is the CustomerDeleted cascade handler.
func (s *borrowingService) RemoveCustomerRecords(ctx context.Context, deleted customer.Customer) error {
	if err := s.repo.DeleteByCustomer(ctx, deleted.ID); err != nil {
		return fmt.Errorf("delete records for customer %s: %w", deleted.ID, err)
	}
	return nil
}
