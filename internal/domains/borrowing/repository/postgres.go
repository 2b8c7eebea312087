package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/borrowing"
	"library-backend/pkg/database"
)

// postgresRepository implements borrowing.Repository.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) borrowing.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.pool)
}

const selectRecord = `
    SELECT id, customer_id, book_id, borrow_date, return_date, created_at, updated_at
    FROM borrowing_records
`

func scanRecord(row pgx.Row) (*borrowing.BorrowingRecord, error) {
	var rec borrowing.BorrowingRecord
	err := row.Scan(
		&rec.ID,
		&rec.CustomerID,
		&rec.BookID,
		&rec.BorrowDate,
		&rec.ReturnDate,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *postgresRepository) collectRecords(ctx context.Context, query string, args ...any) ([]borrowing.BorrowingRecord, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowing records: %w", err)
	}
	defer rows.Close()

	var records []borrowing.BorrowingRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrowing record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating borrowing records: %w", err)
	}

	return records, nil
}

func (r *postgresRepository) Create(ctx context.Context, rec *borrowing.BorrowingRecord) (*borrowing.BorrowingRecord, error) {
	query := `
        INSERT INTO borrowing_records (customer_id, book_id, borrow_date, return_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, customer_id, book_id, borrow_date, return_date, created_at, updated_at
    `

	created, err := scanRecord(r.q(ctx).QueryRow(
		ctx,
		query,
		rec.CustomerID,
		rec.BookID,
		rec.BorrowDate,
		rec.ReturnDate,
	))

	if err != nil {
		// The unique index on (customer_id, book_id, borrow_date) backs
		// the duplicate-triple rule.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, borrowing.ErrDuplicateRecord
		}
		return nil, fmt.Errorf("failed to create borrowing record: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*borrowing.BorrowingRecord, error) {
	rec, err := scanRecord(r.q(ctx).QueryRow(ctx, selectRecord+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, borrowing.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get borrowing record by id: %w", err)
	}
	return rec, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]borrowing.BorrowingRecord, error) {
	return r.collectRecords(ctx, selectRecord+` ORDER BY created_at DESC`)
}

func (r *postgresRepository) Update(ctx context.Context, rec *borrowing.BorrowingRecord) (*borrowing.BorrowingRecord, error) {
	query := `
        UPDATE borrowing_records
        SET
            customer_id = $1,
            book_id = $2,
            borrow_date = $3,
            return_date = $4,
            updated_at = NOW()
        WHERE id = $5
        RETURNING id, customer_id, book_id, borrow_date, return_date, created_at, updated_at
    `

	updated, err := scanRecord(r.q(ctx).QueryRow(
		ctx,
		query,
		rec.CustomerID,
		rec.BookID,
		rec.BorrowDate,
		rec.ReturnDate,
		rec.ID,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, borrowing.ErrRecordNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, borrowing.ErrDuplicateRecord
		}
		return nil, fmt.Errorf("failed to update borrowing record: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM borrowing_records WHERE id = $1`

	cmdTag, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete borrowing record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return borrowing.ErrRecordNotFound
	}

	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM borrowing_records WHERE id = $1)`

	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check borrowing record existence: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) FindByCustomerBookAndBorrowDate(ctx context.Context, customerID, bookID uuid.UUID, borrowDate time.Time) (*borrowing.BorrowingRecord, error) {
	query := selectRecord + ` WHERE customer_id = $1 AND book_id = $2 AND borrow_date = $3`

	rec, err := scanRecord(r.q(ctx).QueryRow(ctx, query, customerID, bookID, borrowDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, borrowing.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find borrowing record by triple: %w", err)
	}
	return rec, nil
}

func (r *postgresRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]borrowing.BorrowingRecord, error) {
	return r.collectRecords(ctx, selectRecord+` WHERE customer_id = $1 ORDER BY borrow_date DESC`, customerID)
}

func (r *postgresRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]borrowing.BorrowingRecord, error) {
	return r.collectRecords(ctx, selectRecord+` WHERE book_id = $1 ORDER BY borrow_date DESC`, bookID)
}

func (r *postgresRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	if _, err := r.q(ctx).Exec(ctx, `DELETE FROM borrowing_records WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("failed to delete borrowing records by customer: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	if _, err := r.q(ctx).Exec(ctx, `DELETE FROM borrowing_records WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to delete borrowing records by book: %w", err)
	}
	return nil
}
