package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/borrowing"
	"library-backend/internal/domains/customer"
)

// stubTx runs the function directly; the lending rules under test do not
// depend on real transaction mechanics.
type stubTx struct {
	calls int
}

func (s *stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

type stubBorrowingRepo struct {
	borrowing.Repository

	createFn    func(ctx context.Context, rec *borrowing.BorrowingRecord) (*borrowing.BorrowingRecord, error)
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*borrowing.BorrowingRecord, error)
	updateFn    func(ctx context.Context, rec *borrowing.BorrowingRecord) (*borrowing.BorrowingRecord, error)
	deleteFn    func(ctx context.Context, id uuid.UUID) error
	findTriple  func(ctx context.Context, customerID, bookID uuid.UUID, borrowDate time.Time) (*borrowing.BorrowingRecord, error)
	deleteByCus func(ctx context.Context, customerID uuid.UUID) error
	deleteByBk  func(ctx context.Context, bookID uuid.UUID) error

	created []borrowing.BorrowingRecord
	deleted []uuid.UUID
}

func (s *stubBorrowingRepo) Create(ctx context.Context, rec *borrowing.BorrowingRecord) (*borrowing.BorrowingRecord, error) {
	if s.createFn != nil {
		return s.createFn(ctx, rec)
	}
	rec.ID = uuid.New()
	s.created = append(s.created, *rec)
	return rec, nil
}

func (s *stubBorrowingRepo) GetByID(ctx context.Context, id uuid.UUID) (*borrowing.BorrowingRecord, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, borrowing.ErrRecordNotFound
}

func (s *stubBorrowingRepo) Update(ctx context.Context, rec *borrowing.BorrowingRecord) (*borrowing.BorrowingRecord, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, rec)
	}
	return rec, nil
}

func (s *stubBorrowingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBorrowingRepo) FindByCustomerBookAndBorrowDate(ctx context.Context, customerID, bookID uuid.UUID, borrowDate time.Time) (*borrowing.BorrowingRecord, error) {
	if s.findTriple != nil {
		return s.findTriple(ctx, customerID, bookID, borrowDate)
	}
	return nil, borrowing.ErrRecordNotFound
}

func (s *stubBorrowingRepo) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	if s.deleteByCus != nil {
		return s.deleteByCus(ctx, customerID)
	}
	return nil
}

func (s *stubBorrowingRepo) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	if s.deleteByBk != nil {
		return s.deleteByBk(ctx, bookID)
	}
	return nil
}

type stubCustomerRepo struct {
	customer.Repository

	getByIDFn func(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
}

func (s *stubCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, customer.ErrCustomerNotFound
}

type stubBookRepo struct {
	book.Repository

	getByIDFn      func(ctx context.Context, id uuid.UUID) (*book.Book, error)
	markBorrowedFn func(ctx context.Context, id uuid.UUID) (bool, error)

	markBorrowedCalls int
}

func (s *stubBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, book.ErrBookNotFound
}

func (s *stubBookRepo) MarkBorrowed(ctx context.Context, id uuid.UUID) (bool, error) {
	s.markBorrowedCalls++
	if s.markBorrowedFn != nil {
		return s.markBorrowedFn(ctx, id)
	}
	return true, nil
}

func fixedCustomer() *customer.Customer {
	return &customer.Customer{
		ID:    uuid.New(),
		Name:  "Salma Adel",
		Email: "salma@example.com",
	}
}

func availableBook() *book.Book {
	return &book.Book{
		ID:        uuid.New(),
		Title:     "The Cairo Trilogy",
		Available: true,
	}
}

func validRequest(customerID, bookID uuid.UUID) *borrowing.CreateBorrowingRequest {
	return &borrowing.CreateBorrowingRequest{
		CustomerID: customerID,
		BookID:     bookID,
		BorrowDate: time.Now().AddDate(0, 0, -1),
		ReturnDate: time.Now().AddDate(0, 0, 13),
	}
}

func TestBorrowingService_Create_Succeeds(t *testing.T) {
	cust := fixedCustomer()
	b := availableBook()

	custRepo := &stubCustomerRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
		return cust, nil
	}}
	bookRepo := &stubBookRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
		return b, nil
	}}
	repo := &stubBorrowingRepo{}
	tx := &stubTx{}

	svc := NewBorrowingService(repo, custRepo, bookRepo, tx)

	created, err := svc.Create(context.Background(), validRequest(cust.ID, b.ID))
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls, "flip and insert must share one transaction")
	assert.Equal(t, 1, bookRepo.markBorrowedCalls)
	require.Len(t, repo.created, 1)
	assert.Equal(t, cust.ID, repo.created[0].CustomerID)
	assert.Equal(t, b.ID, repo.created[0].BookID)

	require.NotNil(t, created.Book)
	assert.False(t, created.Book.Available, "borrowed book must come back unavailable")
	assert.Equal(t, cust, created.Customer)
}

func TestBorrowingService_Create_CustomerNotFound(t *testing.T) {
	bookRepo := &stubBookRepo{}
	repo := &stubBorrowingRepo{}

	svc := NewBorrowingService(repo, &stubCustomerRepo{}, bookRepo, &stubTx{})

	_, err := svc.Create(context.Background(), validRequest(uuid.New(), uuid.New()))
	require.ErrorIs(t, err, customer.ErrCustomerNotFound)
	assert.Empty(t, repo.created)
	assert.Zero(t, bookRepo.markBorrowedCalls)
}

func TestBorrowingService_Create_BookNotFound(t *testing.T) {
	cust := fixedCustomer()
	custRepo := &stubCustomerRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
		return cust, nil
	}}
	repo := &stubBorrowingRepo{}

	svc := NewBorrowingService(repo, custRepo, &stubBookRepo{}, &stubTx{})

	_, err := svc.Create(context.Background(), validRequest(cust.ID, uuid.New()))
	require.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Empty(t, repo.created)
}

func TestBorrowingService_Create_BookAlreadyBorrowed(t *testing.T) {
	cust := fixedCustomer()
	b := availableBook()
	b.Available = false

	custRepo := &stubCustomerRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
		return cust, nil
	}}
	bookRepo := &stubBookRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
		return b, nil
	}}
	repo := &stubBorrowingRepo{}

	svc := NewBorrowingService(repo, custRepo, bookRepo, &stubTx{})

	_, err := svc.Create(context.Background(), validRequest(cust.ID, b.ID))
	require.ErrorIs(t, err, borrowing.ErrBookAlreadyBorrowed)
	assert.Empty(t, repo.created)
	assert.Zero(t, bookRepo.markBorrowedCalls)
}

func TestBorrowingService_Create_DuplicateRecord(t *testing.T) {
	cust := fixedCustomer()
	b := availableBook()

	custRepo := &stubCustomerRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
		return cust, nil
	}}
	bookRepo := &stubBookRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
		return b, nil
	}}
	repo := &stubBorrowingRepo{
		findTriple: func(ctx context.Context, customerID, bookID uuid.UUID, borrowDate time.Time) (*borrowing.BorrowingRecord, error) {
			return &borrowing.BorrowingRecord{ID: uuid.New()}, nil
		},
	}

	svc := NewBorrowingService(repo, custRepo, bookRepo, &stubTx{})

	_, err := svc.Create(context.Background(), validRequest(cust.ID, b.ID))
	require.ErrorIs(t, err, borrowing.ErrDuplicateRecord)
	assert.Empty(t, repo.created)
	assert.Zero(t, bookRepo.markBorrowedCalls, "availability must not change on a duplicate")
}

func TestBorrowingService_Create_ConcurrentBorrowerLoses(t *testing.T) {
	cust := fixedCustomer()
	b := availableBook()

	custRepo := &stubCustomerRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
		return cust, nil
	}}
	// The flag was flipped between the availability read and the
	// conditional write: the flip reports no rows changed.
	bookRepo := &stubBookRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return b, nil
		},
		markBorrowedFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	repo := &stubBorrowingRepo{}

	svc := NewBorrowingService(repo, custRepo, bookRepo, &stubTx{})

	_, err := svc.Create(context.Background(), validRequest(cust.ID, b.ID))
	require.ErrorIs(t, err, borrowing.ErrBookAlreadyBorrowed)
	assert.Empty(t, repo.created, "no record may exist when the flip lost the race")
}

func TestBorrowingService_Create_InsertFailureLeavesNoRecord(t *testing.T) {
	cust := fixedCustomer()
	b := availableBook()
	boom := errors.New("insert failed")

	custRepo := &stubCustomerRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
		return cust, nil
	}}
	bookRepo := &stubBookRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
		return b, nil
	}}
	repo := &stubBorrowingRepo{
		createFn: func(ctx context.Context, rec *borrowing.BorrowingRecord) (*borrowing.BorrowingRecord, error) {
			return nil, boom
		},
	}
	tx := &stubTx{}

	svc := NewBorrowingService(repo, custRepo, bookRepo, tx)

	_, err := svc.Create(context.Background(), validRequest(cust.ID, b.ID))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, tx.calls, "the failed insert must have been inside the transaction")
}

func TestBorrowingService_Create_RejectsFutureBorrowDate(t *testing.T) {
	svc := NewBorrowingService(&stubBorrowingRepo{}, &stubCustomerRepo{}, &stubBookRepo{}, &stubTx{})

	req := validRequest(uuid.New(), uuid.New())
	req.BorrowDate = time.Now().AddDate(0, 0, 2)

	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestBorrowingService_Update_CopiesFieldsWithoutLendingChecks(t *testing.T) {
	existing := &borrowing.BorrowingRecord{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		BookID:     uuid.New(),
		BorrowDate: time.Now().AddDate(0, 0, -10),
		ReturnDate: time.Now().AddDate(0, 0, -3),
	}
	repo := &stubBorrowingRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*borrowing.BorrowingRecord, error) {
			return existing, nil
		},
	}
	bookRepo := &stubBookRepo{}

	svc := NewBorrowingService(repo, &stubCustomerRepo{}, bookRepo, &stubTx{})

	req := &borrowing.UpdateBorrowingRequest{
		CustomerID: uuid.New(),
		BookID:     uuid.New(),
		BorrowDate: time.Now().AddDate(0, 0, -5),
		ReturnDate: time.Now().AddDate(0, 0, 5),
	}
	updated, err := svc.Update(context.Background(), existing.ID, req)
	require.NoError(t, err)

	assert.Equal(t, req.CustomerID, updated.CustomerID)
	assert.Equal(t, req.BookID, updated.BookID)
	assert.Zero(t, bookRepo.markBorrowedCalls, "update must not touch availability")
}

func TestBorrowingService_Update_RecordNotFound(t *testing.T) {
	svc := NewBorrowingService(&stubBorrowingRepo{}, &stubCustomerRepo{}, &stubBookRepo{}, &stubTx{})

	req := &borrowing.UpdateBorrowingRequest{
		CustomerID: uuid.New(),
		BookID:     uuid.New(),
		BorrowDate: time.Now().AddDate(0, 0, -1),
		ReturnDate: time.Now(),
	}
	_, err := svc.Update(context.Background(), uuid.New(), req)
	require.ErrorIs(t, err, borrowing.ErrRecordNotFound)
}

func TestBorrowingService_Delete_RejectsOpenLoan(t *testing.T) {
	rec := &borrowing.BorrowingRecord{
		ID:         uuid.New(),
		ReturnDate: time.Now().AddDate(0, 0, 3),
	}
	repo := &stubBorrowingRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*borrowing.BorrowingRecord, error) {
			return rec, nil
		},
	}

	svc := NewBorrowingService(repo, &stubCustomerRepo{}, &stubBookRepo{}, &stubTx{})

	err := svc.Delete(context.Background(), rec.ID)
	require.ErrorIs(t, err, borrowing.ErrReturnDateInFuture)
	assert.Empty(t, repo.deleted)
}

func TestBorrowingService_Delete_AllowsReturnDateToday(t *testing.T) {
	rec := &borrowing.BorrowingRecord{
		ID:         uuid.New(),
		ReturnDate: time.Now(), // same day, not strictly after
	}
	repo := &stubBorrowingRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*borrowing.BorrowingRecord, error) {
			return rec, nil
		},
	}

	svc := NewBorrowingService(repo, &stubCustomerRepo{}, &stubBookRepo{}, &stubTx{})

	require.NoError(t, svc.Delete(context.Background(), rec.ID))
	assert.Equal(t, []uuid.UUID{rec.ID}, repo.deleted)
}

func TestBorrowingService_Delete_AllowsPastReturnDate(t *testing.T) {
	rec := &borrowing.BorrowingRecord{
		ID:         uuid.New(),
		ReturnDate: time.Now().AddDate(0, 0, -7),
	}
	repo := &stubBorrowingRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*borrowing.BorrowingRecord, error) {
			return rec, nil
		},
	}

	svc := NewBorrowingService(repo, &stubCustomerRepo{}, &stubBookRepo{}, &stubTx{})

	require.NoError(t, svc.Delete(context.Background(), rec.ID))
}

func TestBorrowingService_RemoveBookRecords(t *testing.T) {
	var gotBookID uuid.UUID
	repo := &stubBorrowingRepo{
		deleteByBk: func(ctx context.Context, bookID uuid.UUID) error {
			gotBookID = bookID
			return nil
		},
	}

	svc := NewBorrowingService(repo, &stubCustomerRepo{}, &stubBookRepo{}, &stubTx{})

	deleted := book.Book{ID: uuid.New(), Title: "Season of Migration to the North"}
	require.NoError(t, svc.RemoveBookRecords(context.Background(), deleted))
	assert.Equal(t, deleted.ID, gotBookID)
}

func TestBorrowingService_RemoveCustomerRecords(t *testing.T) {
	var gotCustomerID uuid.UUID
	repo := &stubBorrowingRepo{
		deleteByCus: func(ctx context.Context, customerID uuid.UUID) error {
			gotCustomerID = customerID
			return nil
		},
	}

	svc := NewBorrowingService(repo, &stubCustomerRepo{}, &stubBookRepo{}, &stubTx{})

	deleted := customer.Customer{ID: uuid.New()}
	require.NoError(t, svc.RemoveCustomerRecords(context.Background(), deleted))
	assert.Equal(t, deleted.ID, gotCustomerID)
}
