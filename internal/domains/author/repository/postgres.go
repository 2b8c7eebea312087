package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

// postgresRepository implements author.Repository.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute
)

// q returns the transaction carried by ctx, or the pool.
func (r *postgresRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.pool)
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (name, birth_date, nationality)
        VALUES ($1, $2, $3)
        RETURNING id, name, birth_date, nationality, created_at, updated_at
    `

	var created author.Author
	err := r.q(ctx).QueryRow(
		ctx,
		query,
		a.Name,
		a.BirthDate,
		a.Nationality,
	).Scan(
		&created.ID,
		&created.Name,
		&created.BirthDate,
		&created.Nationality,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a author.Author
	cached, err := r.cache.Get(ctx, cacheKey, &a)
	if err == nil && cached {
		return &a, nil
	}

	query := `
        SELECT id, name, birth_date, nationality, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	err = r.q(ctx).QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.BirthDate,
		&a.Nationality,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*author.Author, error) {
	query := `
        SELECT id, name, birth_date, nationality, created_at, updated_at
        FROM authors
        WHERE name = $1
        LIMIT 1
    `

	var a author.Author
	err := r.q(ctx).QueryRow(ctx, query, name).Scan(
		&a.ID,
		&a.Name,
		&a.BirthDate,
		&a.Nationality,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	query := `
        SELECT id, name, birth_date, nationality, created_at, updated_at
        FROM authors
        ORDER BY created_at DESC
    `

	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.BirthDate,
			&a.Nationality,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        UPDATE authors
        SET
            name = $1,
            birth_date = $2,
            nationality = $3,
            updated_at = NOW()
        WHERE id = $4
        RETURNING id, name, birth_date, nationality, created_at, updated_at
    `

	var updated author.Author
	err := r.q(ctx).QueryRow(
		ctx,
		query,
		a.Name,
		a.BirthDate,
		a.Nationality,
		a.ID,
	).Scan(
		&updated.ID,
		&updated.Name,
		&updated.BirthDate,
		&updated.Nationality,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+a.ID.String())

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM authors WHERE id = $1`

	cmdTag, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())

	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`

	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}

	return exists, nil
}
