// repository/user/repo.go
package userrepo

import (
	"context"
	"database/sql"

	"pageflow/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetNameByID(ctx context.Context, id int64) (string, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (name, email, password_hash, role)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, u.Name, u.Email, u.PasswordHash, u.Role).
		Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, name, email, password_hash, role, created_at
FROM users
WHERE email = $1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) GetNameByID(ctx context.Context, id int64) (string, error) {
	const q = `SELECT name FROM users WHERE id = $1`
	var name string
	err := r.db.QueryRowContext(ctx, q, id).Scan(&name)
	return name, err
}
