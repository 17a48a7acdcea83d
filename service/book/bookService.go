package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pageflow/model"
)

type Book = model.Book

type ErrCode string

const (
	ErrNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type Service interface {
	Create(ctx context.Context, req model.CreateBookReq) (int64, error)
	List(ctx context.Context) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, req model.CreateBookReq) (int64, error) {
	if req.Title == "" || req.Author == "" || req.PageCount < 0 {
		return 0, codedError{code: ErrBadInput, msg: "invalid payload"}
	}
	b := &model.Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Publisher:     req.Publisher,
		Category:      req.Category,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		PageCount:     req.PageCount,
	}
	if req.PublishedDate != "" {
		d, err := time.Parse("2006-01-02", req.PublishedDate)
		if err != nil {
			return 0, codedError{code: ErrBadInput, msg: "published_date must be YYYY-MM-DD"}
		}
		b.PublishedDate = &d
	}
	return s.r.Create(ctx, b)
}

func (s *service) List(ctx context.Context) ([]Book, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*Book, error) {
	b, err := s.r.Detail(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, codedError{code: ErrNotFound, msg: fmt.Sprintf("Book with ID %d not found", id)}
	}
	return b, err
}
