// service/chat/chat_service_test.go
package chatsvc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"pageflow/model"
	bookrepo "pageflow/repository/book"
	chatsvc "pageflow/service/chat"
)

type catalogMock struct {
	listAvailableFn  func(ctx context.Context) ([]model.Book, error)
	searchByAuthorFn func(ctx context.Context, author string, limit int) ([]model.Book, error)
	topRatedFn       func(ctx context.Context, limit int) ([]bookrepo.RatedBook, error)
}

func (m *catalogMock) ListAvailable(ctx context.Context) ([]model.Book, error) {
	return m.listAvailableFn(ctx)
}
func (m *catalogMock) SearchByAuthor(ctx context.Context, author string, limit int) ([]model.Book, error) {
	return m.searchByAuthorFn(ctx, author, limit)
}
func (m *catalogMock) TopRatedAvailable(ctx context.Context, limit int) ([]bookrepo.RatedBook, error) {
	return m.topRatedFn(ctx, limit)
}

func newChat(cat chatsvc.Catalog) chatsvc.Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return chatsvc.New(cat, rand.New(rand.NewSource(1)), log)
}

func TestEmptyAndUnknownInput(t *testing.T) {
	s := newChat(&catalogMock{})
	for _, msg := range []string{"", "   ", "what is the meaning of life"} {
		got := s.GenerateResponse(context.Background(), msg)
		if !strings.Contains(got, "not sure how to help") {
			t.Fatalf("msg %q: want default reply, got %q", msg, got)
		}
	}
}

func TestHelpAndGreeting(t *testing.T) {
	s := newChat(&catalogMock{})

	if got := s.GenerateResponse(context.Background(), "HELP please"); !strings.Contains(got, "recommend") {
		t.Fatalf("help reply missing commands: %q", got)
	}
	// help outranks every other keyword
	if got := s.GenerateResponse(context.Background(), "help me borrow a book"); !strings.Contains(got, "I can help you with") {
		t.Fatalf("help must win the priority order: %q", got)
	}
	for _, msg := range []string{"hi", "Hello", "hey there"} {
		if got := s.GenerateResponse(context.Background(), msg); !strings.Contains(got, "Hello!") {
			t.Fatalf("msg %q: want greeting, got %q", msg, got)
		}
	}
	// "highlight" must not read as a greeting
	if got := s.GenerateResponse(context.Background(), "highlight"); strings.Contains(got, "Hello!") {
		t.Fatalf("prefix match too loose: %q", got)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	books := []model.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", PageCount: 412, IsAvailable: true},
		{ID: 2, Title: "Hyperion", Author: "Dan Simmons", Category: "Sci-Fi", PageCount: 482, IsAvailable: true},
	}
	cat := &catalogMock{
		listAvailableFn: func(ctx context.Context) ([]model.Book, error) { return books, nil },
	}

	// same seed, same pick
	a := newChat(cat).GenerateResponse(context.Background(), "recommend me a book")
	b := newChat(cat).GenerateResponse(context.Background(), "any suggestions?")
	if a != b {
		t.Fatalf("seeded responder must be deterministic: %q vs %q", a, b)
	}
	if !strings.Contains(a, "How about") || !strings.Contains(a, "pages") {
		t.Fatalf("recommend reply missing template fields: %q", a)
	}
}

func TestRecommend_NoneAvailable(t *testing.T) {
	cat := &catalogMock{
		listAvailableFn: func(ctx context.Context) ([]model.Book, error) { return nil, nil },
	}
	got := newChat(cat).GenerateResponse(context.Background(), "recommend something")
	if !strings.Contains(got, "checked out") {
		t.Fatalf("want apology for empty shelves, got %q", got)
	}
}

func TestByAuthor(t *testing.T) {
	var gotAuthor string
	cat := &catalogMock{
		searchByAuthorFn: func(ctx context.Context, author string, limit int) ([]model.Book, error) {
			gotAuthor = author
			if limit != 3 {
				t.Fatalf("want limit 3, got %d", limit)
			}
			return []model.Book{
				{Title: "Dune", Author: "Frank Herbert", IsAvailable: true},
				{Title: "Dune Messiah", Author: "Frank Herbert", IsAvailable: false},
			}, nil
		},
	}
	got := newChat(cat).GenerateResponse(context.Background(), "Find books by Frank Herbert?")
	if gotAuthor != "frank herbert" {
		t.Fatalf("author extraction: got %q", gotAuthor)
	}
	if !strings.Contains(got, "(available)") || !strings.Contains(got, "(checked out)") {
		t.Fatalf("availability annotations missing: %q", got)
	}
}

func TestByAuthor_NoMatch(t *testing.T) {
	cat := &catalogMock{
		searchByAuthorFn: func(ctx context.Context, author string, limit int) ([]model.Book, error) {
			return nil, nil
		},
	}
	got := newChat(cat).GenerateResponse(context.Background(), "books by nobody famous")
	if !strings.Contains(got, "couldn't find") {
		t.Fatalf("want apology, got %q", got)
	}
}

func TestPopular(t *testing.T) {
	cat := &catalogMock{
		topRatedFn: func(ctx context.Context, limit int) ([]bookrepo.RatedBook, error) {
			return []bookrepo.RatedBook{
				{Book: model.Book{Title: "Dune", Author: "Frank Herbert"}, AvgRating: 4.8},
				{Book: model.Book{Title: "Hyperion", Author: "Dan Simmons"}, AvgRating: 4.5},
			}, nil
		},
	}
	got := newChat(cat).GenerateResponse(context.Background(), "what's popular?")
	if !strings.Contains(got, "1. 'Dune'") || !strings.Contains(got, "4.8") {
		t.Fatalf("popular reply malformed: %q", got)
	}
}

func TestCheckoutInfo(t *testing.T) {
	got := newChat(&catalogMock{}).GenerateResponse(context.Background(), "how do I borrow a book")
	if !strings.Contains(got, "5 days") {
		t.Fatalf("checkout info must mention the loan period: %q", got)
	}
}

func TestErrorsDegradeToApology(t *testing.T) {
	boom := errors.New("db down")
	cat := &catalogMock{
		listAvailableFn:  func(ctx context.Context) ([]model.Book, error) { return nil, boom },
		searchByAuthorFn: func(ctx context.Context, author string, limit int) ([]model.Book, error) { return nil, boom },
		topRatedFn:       func(ctx context.Context, limit int) ([]bookrepo.RatedBook, error) { return nil, boom },
	}
	s := newChat(cat)
	for _, msg := range []string{"recommend a book", "books by frank herbert", "popular books"} {
		got := s.GenerateResponse(context.Background(), msg)
		if !strings.Contains(got, "Sorry") || strings.Contains(got, "db down") {
			t.Fatalf("msg %q: raw errors must never surface, got %q", msg, got)
		}
	}
}
