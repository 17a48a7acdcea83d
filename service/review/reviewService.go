package reviewsvc

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"pageflow/model"
)

var (
	ErrAlreadyReviewed = errors.New("user already reviewed this book")
	ErrBookMissing     = errors.New("book not found")
	ErrBadRating       = errors.New("rating must be between 1 and 5")
)

type Repo interface {
	Insert(ctx context.Context, rv *model.Review) (int64, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

type Service interface {
	Add(ctx context.Context, userID, bookID int64, req model.CreateReviewReq) (int64, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Add(ctx context.Context, userID, bookID int64, req model.CreateReviewReq) (int64, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return 0, ErrBadRating
	}
	id, err := s.r.Insert(ctx, &model.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		if derr := mapPgErr(err); derr != nil {
			return 0, derr
		}
		return 0, err
	}
	return id, nil
}

func (s *service) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	return s.r.ListByBook(ctx, bookID)
}

func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ErrAlreadyReviewed
	case pgerrcode.ForeignKeyViolation:
		return ErrBookMissing
	}
	return nil
}
