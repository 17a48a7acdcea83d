// repository/book/repo.go
package bookrepo

import (
	"context"
	"database/sql"

	"pageflow/model"
)

// LockedBook is the slice of a book row held under FOR UPDATE
// while the checkout engine decides a transition.
type LockedBook struct {
	ID          int64
	Title       string
	IsAvailable bool
}

type RatedBook struct {
	model.Book
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)

	// Chat reads
	ListAvailable(ctx context.Context) ([]model.Book, error)
	SearchByAuthor(ctx context.Context, author string, limit int) ([]model.Book, error)
	TopRatedAvailable(ctx context.Context, limit int) ([]RatedBook, error)

	// Checkout engine only. Nothing else may touch is_available.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*LockedBook, error)
	SetAvailability(ctx context.Context, tx *sql.Tx, id int64, available bool) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookCols = `id, title, author, isbn, publisher, category, description, cover_image_url, published_date, page_count, is_available`

func scanBook(row interface{ Scan(...any) error }, b *model.Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Publisher, &b.Category,
		&b.Description, &b.CoverImageURL, &b.PublishedDate, &b.PageCount, &b.IsAvailable,
	)
}

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (title, author, isbn, publisher, category, description, cover_image_url, published_date, page_count, is_available)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE)
RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.ISBN, b.Publisher, b.Category,
		b.Description, b.CoverImageURL, b.PublishedDate, b.PageCount,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books ORDER BY id DESC`
	return r.queryBooks(ctx, q)
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE id=$1`
	var b model.Book
	if err := scanBook(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) ListAvailable(ctx context.Context) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE is_available ORDER BY id`
	return r.queryBooks(ctx, q)
}

func (r *repo) SearchByAuthor(ctx context.Context, author string, limit int) ([]model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books
WHERE author ILIKE '%' || $1 || '%'
ORDER BY id
LIMIT $2`
	return r.queryBooks(ctx, q, author, limit)
}

func (r *repo) TopRatedAvailable(ctx context.Context, limit int) ([]RatedBook, error) {
	const q = `
SELECT ` + bookCols + `, avg_rating, review_count
FROM (
	SELECT b.*,
		AVG(rv.rating)::FLOAT8 AS avg_rating,
		COUNT(rv.*)::BIGINT    AS review_count
	FROM books b
	JOIN reviews rv ON rv.book_id = b.id
	WHERE b.is_available
	GROUP BY b.id
) ranked
ORDER BY avg_rating DESC, id
LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RatedBook
	for rows.Next() {
		var rb RatedBook
		if err := rows.Scan(
			&rb.ID, &rb.Title, &rb.Author, &rb.ISBN, &rb.Publisher, &rb.Category,
			&rb.Description, &rb.CoverImageURL, &rb.PublishedDate, &rb.PageCount, &rb.IsAvailable,
			&rb.AvgRating, &rb.ReviewCount,
		); err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*LockedBook, error) {
	// Serializes concurrent checkouts of the same book.
	const q = `
SELECT id, title, is_available
FROM books
WHERE id = $1
FOR UPDATE`
	var lb LockedBook
	if err := tx.QueryRowContext(ctx, q, id).Scan(&lb.ID, &lb.Title, &lb.IsAvailable); err != nil {
		return nil, err
	}
	return &lb, nil
}

func (r *repo) SetAvailability(ctx context.Context, tx *sql.Tx, id int64, available bool) error {
	const q = `UPDATE books SET is_available = $2 WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, available)
	return err
}

func (r *repo) queryBooks(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
