package checkoutsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	bookrepo "pageflow/repository/book"
	checkoutrepo "pageflow/repository/checkout"
)

// LoanPeriod is the fixed span between checkout and due date.
const LoanPeriod = 5 * 24 * time.Hour

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrBookUnavailable ErrCode = "BOOK_UNAVAILABLE"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func NotFoundErr(bookID int64) error {
	return makeErr(ErrBookNotFound, fmt.Sprintf("Book with ID %d not found", bookID))
}

func UnavailableErr(bookID int64) error {
	return makeErr(ErrBookUnavailable, fmt.Sprintf("Book with ID %d is not available for checkout", bookID))
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type CheckoutDTO struct {
	ID           int64      `json:"id"`
	BookID       int64      `json:"book_id"`
	BookTitle    string     `json:"book_title"`
	UserID       int64      `json:"user_id"`
	UserName     string     `json:"user_name"`
	CheckoutDate time.Time  `json:"checkout_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
}

// toDTO recomputes the due date from the checkout date so the exposed
// value can never drift from the stored row.
func toDTO(row *checkoutrepo.Row) *CheckoutDTO {
	return &CheckoutDTO{
		ID:           row.ID,
		BookID:       row.BookID,
		BookTitle:    row.BookTitle,
		UserID:       row.UserID,
		UserName:     row.UserName,
		CheckoutDate: row.CheckedOutAt,
		DueDate:      row.CheckedOutAt.Add(LoanPeriod),
		ReturnDate:   row.ReturnedAt,
	}
}

// ----- Service -----

// TxRunner runs fn inside a transaction; implemented by util/database.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type BookRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*bookrepo.LockedBook, error)
	SetAvailability(ctx context.Context, tx *sql.Tx, id int64, available bool) error
}

type LedgerRepo interface {
	Insert(ctx context.Context, tx *sql.Tx, userID, bookID int64, checkedOutAt, dueAt time.Time) (int64, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*checkoutrepo.Row, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, id int64, returnedAt time.Time) error
	GetUserName(ctx context.Context, tx *sql.Tx, userID int64) (string, error)

	GetByID(ctx context.Context, id int64) (*checkoutrepo.Row, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]checkoutrepo.Row, error)
	ListActive(ctx context.Context) ([]checkoutrepo.Row, error)
}

type Service interface {
	// CheckoutBook lends a book to a user, flipping availability and
	// appending to the ledger in one transaction.
	CheckoutBook(ctx context.Context, userID, bookID int64) (*CheckoutDTO, error)

	// ReturnBook closes an active checkout. Returns nil (not an error)
	// when the checkout is missing or already returned.
	ReturnBook(ctx context.Context, checkoutID int64) (*CheckoutDTO, error)

	GetUserCheckouts(ctx context.Context, userID int64) ([]CheckoutDTO, error)
	GetAllActiveCheckouts(ctx context.Context) ([]CheckoutDTO, error)
	GetCheckoutByID(ctx context.Context, id int64) (*CheckoutDTO, error)
}

type service struct {
	db    TxRunner
	books BookRepo
	led   LedgerRepo
	log   *slog.Logger
}

func New(db TxRunner, books BookRepo, led LedgerRepo, log *slog.Logger) Service {
	return &service{db: db, books: books, led: led, log: log}
}

func (s *service) CheckoutBook(ctx context.Context, userID, bookID int64) (*CheckoutDTO, error) {
	s.log.Info("checkout attempt", "user_id", userID, "book_id", bookID)

	var dto *CheckoutDTO
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		// The row lock serializes concurrent checkouts of the same book:
		// the loser re-reads is_available=false and gets the conflict.
		book, err := s.books.GetForUpdate(ctx, tx, bookID)
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("checkout rejected", "book_id", bookID, "reason", "book not found")
			return NotFoundErr(bookID)
		}
		if err != nil {
			return err
		}
		if !book.IsAvailable {
			s.log.Warn("checkout rejected", "book_id", bookID, "reason", "not available")
			return UnavailableErr(bookID)
		}

		now := time.Now().UTC()
		id, err := s.led.Insert(ctx, tx, userID, bookID, now, now.Add(LoanPeriod))
		if err != nil {
			return err
		}
		if err := s.books.SetAvailability(ctx, tx, bookID, false); err != nil {
			return err
		}

		userName, err := s.led.GetUserName(ctx, tx, userID)
		if err != nil {
			return err
		}

		dto = toDTO(&checkoutrepo.Row{
			ID:           id,
			BookID:       bookID,
			BookTitle:    book.Title,
			UserID:       userID,
			UserName:     userName,
			CheckedOutAt: now,
		})
		return nil
	})
	if err != nil {
		if Code(err) == "" {
			s.log.Error("checkout failed", "user_id", userID, "book_id", bookID, "err", err)
		}
		return nil, err
	}

	s.log.Info("checkout created",
		"checkout_id", dto.ID, "user_id", userID, "book_id", bookID, "due_at", dto.DueDate)
	return dto, nil
}

func (s *service) ReturnBook(ctx context.Context, checkoutID int64) (*CheckoutDTO, error) {
	var dto *CheckoutDTO
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := s.led.GetForUpdate(ctx, tx, checkoutID)
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("return skipped", "checkout_id", checkoutID, "reason", "checkout not found")
			return nil
		}
		if err != nil {
			return err
		}
		if row.ReturnedAt != nil {
			s.log.Warn("return skipped", "checkout_id", checkoutID, "reason", "already returned")
			return nil
		}

		now := time.Now().UTC()
		if err := s.led.MarkReturned(ctx, tx, checkoutID, now); err != nil {
			return err
		}
		if err := s.books.SetAvailability(ctx, tx, row.BookID, true); err != nil {
			return err
		}

		row.ReturnedAt = &now
		dto = toDTO(row)
		return nil
	})
	if err != nil {
		s.log.Error("return failed", "checkout_id", checkoutID, "err", err)
		return nil, err
	}
	if dto != nil {
		s.log.Info("checkout returned", "checkout_id", dto.ID, "book_id", dto.BookID)
	}
	return dto, nil
}

func (s *service) GetUserCheckouts(ctx context.Context, userID int64) ([]CheckoutDTO, error) {
	rows, err := s.led.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

func (s *service) GetAllActiveCheckouts(ctx context.Context) ([]CheckoutDTO, error) {
	rows, err := s.led.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

func (s *service) GetCheckoutByID(ctx context.Context, id int64) (*CheckoutDTO, error) {
	row, err := s.led.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDTO(row), nil
}

func toDTOs(rows []checkoutrepo.Row) []CheckoutDTO {
	out := make([]CheckoutDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out
}
