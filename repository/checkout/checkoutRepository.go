// repository/checkout/repo.go
package checkoutrepo

import (
	"context"
	"database/sql"
	"time"
)

// Row is a ledger entry joined with the book title and user name
// the lifecycle engine projects into its DTOs.
type Row struct {
	ID           int64
	BookID       int64
	BookTitle    string
	UserID       int64
	UserName     string
	CheckedOutAt time.Time
	ReturnedAt   *time.Time
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, userID, bookID int64, checkedOutAt, dueAt time.Time) (int64, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*Row, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, id int64, returnedAt time.Time) error
	GetUserName(ctx context.Context, tx *sql.Tx, userID int64) (string, error)

	GetByID(ctx context.Context, id int64) (*Row, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]Row, error)
	ListActive(ctx context.Context) ([]Row, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]Row, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, userID, bookID int64, checkedOutAt, dueAt time.Time) (int64, error) {
	const q = `
INSERT INTO checkouts (user_id, book_id, checked_out_at, due_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, userID, bookID, checkedOutAt, dueAt).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*Row, error) {
	const q = `
SELECT c.id, c.book_id, b.title, c.user_id, u.name, c.checked_out_at, c.returned_at
FROM checkouts c
JOIN books b ON b.id = c.book_id
JOIN users u ON u.id = c.user_id
WHERE c.id = $1
FOR UPDATE OF c`
	var row Row
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.BookID, &row.BookTitle, &row.UserID, &row.UserName,
		&row.CheckedOutAt, &row.ReturnedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, id int64, returnedAt time.Time) error {
	const q = `
UPDATE checkouts
SET returned_at = $2
WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, returnedAt)
	return err
}

func (r *repo) GetUserName(ctx context.Context, tx *sql.Tx, userID int64) (string, error) {
	const q = `SELECT name FROM users WHERE id = $1`
	var name string
	err := tx.QueryRowContext(ctx, q, userID).Scan(&name)
	return name, err
}

const rowSelect = `
SELECT c.id, c.book_id, b.title, c.user_id, u.name, c.checked_out_at, c.returned_at
FROM checkouts c
JOIN books b ON b.id = c.book_id
JOIN users u ON u.id = c.user_id`

func (r *repo) GetByID(ctx context.Context, id int64) (*Row, error) {
	const q = rowSelect + `
WHERE c.id = $1`
	var row Row
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.BookID, &row.BookTitle, &row.UserID, &row.UserName,
		&row.CheckedOutAt, &row.ReturnedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repo) ListActiveByUser(ctx context.Context, userID int64) ([]Row, error) {
	const q = rowSelect + `
WHERE c.user_id = $1 AND c.returned_at IS NULL
ORDER BY c.checked_out_at DESC, c.id DESC`
	return r.queryRows(ctx, q, userID)
}

func (r *repo) ListActive(ctx context.Context) ([]Row, error) {
	const q = rowSelect + `
WHERE c.returned_at IS NULL
ORDER BY c.checked_out_at DESC, c.id DESC`
	return r.queryRows(ctx, q)
}

func (r *repo) ListOverdue(ctx context.Context, asOf time.Time) ([]Row, error) {
	const q = rowSelect + `
WHERE c.returned_at IS NULL AND c.due_at < $1
ORDER BY c.due_at, c.id`
	return r.queryRows(ctx, q, asOf)
}

func (r *repo) queryRows(ctx context.Context, q string, args ...any) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.ID, &row.BookID, &row.BookTitle, &row.UserID, &row.UserName,
			&row.CheckedOutAt, &row.ReturnedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
