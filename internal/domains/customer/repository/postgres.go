package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/customer"
	"library-backend/pkg/database"
)

// postgresRepository implements customer.Repository.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) customer.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.pool)
}

// translateUniqueViolation maps the unique email constraint to the domain
// conflict error so storage errors never leak raw.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") || strings.Contains(pgErr.Message, "email") {
			return customer.ErrEmailAlreadyExists
		}
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	query := `
        INSERT INTO customers (name, email, address, phone, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, email, address, phone, password_hash, created_at, updated_at
    `

	var created customer.Customer
	err := r.q(ctx).QueryRow(
		ctx,
		query,
		c.Name,
		c.Email,
		c.Address,
		c.Phone,
		c.Password,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.Address,
		&created.Phone,
		&created.Password,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		if domainErr := translateUniqueViolation(err); domainErr != nil {
			return nil, domainErr
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `
        SELECT id, name, email, address, phone, password_hash, created_at, updated_at
        FROM customers
        WHERE id = $1
    `

	var c customer.Customer
	err := r.q(ctx).QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Address,
		&c.Phone,
		&c.Password,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by id: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]customer.Customer, error) {
	query := `
        SELECT id, name, email, address, phone, password_hash, created_at, updated_at
        FROM customers
        ORDER BY created_at DESC
    `

	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Address,
			&c.Phone,
			&c.Password,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	query := `
        UPDATE customers
        SET
            name = $1,
            email = $2,
            address = $3,
            phone = $4,
            password_hash = $5,
            updated_at = NOW()
        WHERE id = $6
        RETURNING id, name, email, address, phone, password_hash, created_at, updated_at
    `

	var updated customer.Customer
	err := r.q(ctx).QueryRow(
		ctx,
		query,
		c.Name,
		c.Email,
		c.Address,
		c.Phone,
		c.Password,
		c.ID,
	).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Email,
		&updated.Address,
		&updated.Phone,
		&updated.Password,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		if domainErr := translateUniqueViolation(err); domainErr != nil {
			return nil, domainErr
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE id = $1`

	cmdTag, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`

	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`

	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}
