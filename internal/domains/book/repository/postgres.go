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
	"library-backend/internal/domains/book"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

// postgresRepository implements book.Repository.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	bookCacheKeyPrefix = "book:"
	cacheTTL           = 15 * time.Minute
)

// selectBook joins the nullable author so read paths return the resolved
// reference in one round trip.
const selectBook = `
    SELECT
        b.id, b.title, b.author_id, b.isbn, b.publication_date, b.genre,
        b.available, b.created_at, b.updated_at,
        a.name, a.birth_date, a.nationality, a.created_at, a.updated_at
    FROM books b
    LEFT JOIN authors a ON a.id = b.author_id
`

func (r *postgresRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.pool)
}

// scanBook scans one joined row. The author columns are NULL when the book
// has no author reference.
func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	var authorName *string
	var authorBirthDate *time.Time
	var authorNationality *string
	var authorCreatedAt, authorUpdatedAt *time.Time

	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.ISBN,
		&b.PublicationDate,
		&b.Genre,
		&b.Available,
		&b.CreatedAt,
		&b.UpdatedAt,
		&authorName,
		&authorBirthDate,
		&authorNationality,
		&authorCreatedAt,
		&authorUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if b.AuthorID != nil && authorName != nil {
		b.Author = &author.Author{
			ID:          *b.AuthorID,
			Name:        *authorName,
			BirthDate:   authorBirthDate,
			Nationality: authorNationality,
			CreatedAt:   *authorCreatedAt,
			UpdatedAt:   *authorUpdatedAt,
		}
	}

	return &b, nil
}

func (r *postgresRepository) collectBooks(ctx context.Context, query string, args ...any) ([]book.Book, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        INSERT INTO books (title, author_id, isbn, publication_date, genre, available)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `

	created := *b
	err := r.q(ctx).QueryRow(
		ctx,
		query,
		b.Title,
		b.AuthorID,
		b.ISBN,
		b.PublicationDate,
		b.Genre,
		b.Available,
	).Scan(
		&created.ID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cachedBook book.Book
	cached, err := r.cache.Get(ctx, cacheKey, &cachedBook)
	if err == nil && cached {
		return &cachedBook, nil
	}

	b, err := scanBook(r.q(ctx).QueryRow(ctx, selectBook+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return b, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]book.Book, error) {
	return r.collectBooks(ctx, selectBook+` ORDER BY b.created_at DESC`)
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        UPDATE books
        SET
            title = $1,
            author_id = $2,
            isbn = $3,
            publication_date = $4,
            genre = $5,
            available = $6,
            updated_at = NOW()
        WHERE id = $7
        RETURNING created_at, updated_at
    `

	updated := *b
	err := r.q(ctx).QueryRow(
		ctx,
		query,
		b.Title,
		b.AuthorID,
		b.ISBN,
		b.PublicationDate,
		b.Genre,
		b.Available,
		b.ID,
	).Scan(
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.cache.Delete(ctx, bookCacheKeyPrefix+b.ID.String())

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM books WHERE id = $1`

	cmdTag, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())

	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`

	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}

	return exists, nil
}

// MarkBorrowed performs the Available -> Borrowed transition with a
// conditional write. The WHERE clause on the flag is what serializes
// concurrent borrowers: under two simultaneous transactions the second
// blocks on the row lock and then matches zero rows.
func (r *postgresRepository) MarkBorrowed(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
        UPDATE books
        SET available = false, updated_at = NOW()
        WHERE id = $1 AND available = true
    `

	cmdTag, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark book borrowed: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		exists, err := r.ExistsByID(ctx, id)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, book.ErrBookNotFound
		}
		// Book exists but the flag was already false.
		return false, nil
	}

	r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())

	return true, nil
}

func (r *postgresRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
	return r.collectBooks(ctx, selectBook+` WHERE b.author_id = $1`, authorID)
}

func (r *postgresRepository) SearchByTitle(ctx context.Context, title string) ([]book.Book, error) {
	return r.collectBooks(ctx, selectBook+` WHERE b.title ILIKE $1`, "%"+title+"%")
}

func (r *postgresRepository) SearchByAuthorName(ctx context.Context, name string) ([]book.Book, error) {
	return r.collectBooks(ctx, selectBook+` WHERE a.name ILIKE $1`, "%"+name+"%")
}

func (r *postgresRepository) SearchByISBN(ctx context.Context, isbn string) ([]book.Book, error) {
	return r.collectBooks(ctx, selectBook+` WHERE b.isbn ILIKE $1`, "%"+isbn+"%")
}
