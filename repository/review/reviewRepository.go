// repository/review/repo.go
package reviewrepo

import (
	"context"
	"database/sql"

	"pageflow/model"
)

type Repo interface {
	Insert(ctx context.Context, rv *model.Review) (int64, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, rv *model.Review) (int64, error) {
	const q = `
INSERT INTO reviews (book_id, user_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, rv.BookID, rv.UserID, rv.Rating, rv.Comment).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	const q = `
SELECT rv.id, rv.book_id, rv.user_id, u.name, rv.rating, rv.comment, rv.created_at
FROM reviews rv
JOIN users u ON u.id = rv.user_id
WHERE rv.book_id = $1
ORDER BY rv.created_at DESC, rv.id DESC`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
