// service/review/review_service_test.go
package reviewsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"pageflow/model"
	reviewsvc "pageflow/service/review"
)

type repoMock struct {
	insertFn func(ctx context.Context, rv *model.Review) (int64, error)
	listFn   func(ctx context.Context, bookID int64) ([]model.Review, error)
}

func (m *repoMock) Insert(ctx context.Context, rv *model.Review) (int64, error) {
	return m.insertFn(ctx, rv)
}
func (m *repoMock) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	return m.listFn(ctx, bookID)
}

func TestAdd_RatingBounds(t *testing.T) {
	s := reviewsvc.New(&repoMock{})
	for _, rating := range []int{0, 6, -1} {
		if _, err := s.Add(context.Background(), 1, 1, model.CreateReviewReq{Rating: rating}); !errors.Is(err, reviewsvc.ErrBadRating) {
			t.Fatalf("rating %d: want ErrBadRating, got %v", rating, err)
		}
	}
}

func TestAdd_Duplicate(t *testing.T) {
	m := &repoMock{
		insertFn: func(ctx context.Context, rv *model.Review) (int64, error) {
			return 0, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "reviews_user_book_key"}
		},
	}
	s := reviewsvc.New(m)
	if _, err := s.Add(context.Background(), 1, 1, model.CreateReviewReq{Rating: 4}); !errors.Is(err, reviewsvc.ErrAlreadyReviewed) {
		t.Fatalf("want ErrAlreadyReviewed, got %v", err)
	}
}

func TestAdd_MissingBook(t *testing.T) {
	m := &repoMock{
		insertFn: func(ctx context.Context, rv *model.Review) (int64, error) {
			return 0, &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
		},
	}
	s := reviewsvc.New(m)
	if _, err := s.Add(context.Background(), 1, 999, model.CreateReviewReq{Rating: 4}); !errors.Is(err, reviewsvc.ErrBookMissing) {
		t.Fatalf("want ErrBookMissing, got %v", err)
	}
}

func TestAdd_Success(t *testing.T) {
	m := &repoMock{
		insertFn: func(ctx context.Context, rv *model.Review) (int64, error) {
			if rv.BookID != 2 || rv.UserID != 1 || rv.Rating != 5 {
				return 0, errors.New("bad args")
			}
			return 10, nil
		},
	}
	s := reviewsvc.New(m)
	id, err := s.Add(context.Background(), 1, 2, model.CreateReviewReq{Rating: 5, Comment: "great"})
	if err != nil || id != 10 {
		t.Fatalf("got %v %v; want 10 nil", id, err)
	}
}
