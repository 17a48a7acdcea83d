package chatsvc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"sync"

	"pageflow/model"
	bookrepo "pageflow/repository/book"
)

const (
	defaultReply = "I'm not sure how to help with that. Say 'help' to see what I can do."
	apologyReply = "Sorry, I couldn't look that up right now. Please try again in a moment."
	helpReply    = "I can help you with:\n" +
		"- 'recommend a book' for a random pick from the shelves\n" +
		"- 'books by <author>' to search by author\n" +
		"- 'popular books' for the top rated titles\n" +
		"- 'how do I borrow a book' for checkout info"
	greetReply    = "Hello! I'm the PageFlow assistant. Ask me for a recommendation, an author, or the most popular books."
	checkoutReply = "To borrow a book, open its detail page and hit 'Check out'. Loans run for 5 days; return any time from 'My checkouts'."
)

// Catalog is the read-only slice of the book repository the
// responder needs. It never writes.
type Catalog interface {
	ListAvailable(ctx context.Context) ([]model.Book, error)
	SearchByAuthor(ctx context.Context, author string, limit int) ([]model.Book, error)
	TopRatedAvailable(ctx context.Context, limit int) ([]bookrepo.RatedBook, error)
}

type Service interface {
	GenerateResponse(ctx context.Context, message string) string
}

type service struct {
	cat Catalog
	log *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds the responder. rng is injected so tests can pin the
// recommendation choice.
func New(cat Catalog, rng *rand.Rand, log *slog.Logger) Service {
	return &service{cat: cat, rng: rng, log: log}
}

var authorPattern = regexp.MustCompile(`(?:books by|by author)\s+(.+)$`)

// GenerateResponse matches rules in fixed priority order. It never
// returns a raw error to the user.
func (s *service) GenerateResponse(ctx context.Context, message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return defaultReply
	}

	switch {
	case strings.Contains(msg, "help") || strings.Contains(msg, "commands"):
		return helpReply

	case isGreeting(msg):
		return greetReply

	case strings.Contains(msg, "recommend") || strings.Contains(msg, "suggest"):
		return s.recommend(ctx)

	case strings.Contains(msg, "books by") || strings.Contains(msg, "by author"):
		return s.byAuthor(ctx, msg)

	case strings.Contains(msg, "popular") || strings.Contains(msg, "top rated") || strings.Contains(msg, "top-rated"):
		return s.popular(ctx)

	case strings.Contains(msg, "checkout") || strings.Contains(msg, "check out") || strings.Contains(msg, "borrow"):
		return checkoutReply
	}
	return defaultReply
}

func isGreeting(msg string) bool {
	for _, g := range []string{"hi", "hello", "hey"} {
		if msg == g || strings.HasPrefix(msg, g+" ") {
			return true
		}
	}
	return false
}

func (s *service) recommend(ctx context.Context) string {
	books, err := s.cat.ListAvailable(ctx)
	if err != nil {
		s.log.Error("chat recommend", "err", err)
		return apologyReply
	}
	if len(books) == 0 {
		return "Sorry, everything is checked out right now. Check back soon!"
	}

	s.mu.Lock()
	pick := books[s.rng.Intn(len(books))]
	s.mu.Unlock()

	reply := fmt.Sprintf("How about '%s' by %s?", pick.Title, pick.Author)
	if pick.Category != "" {
		reply += fmt.Sprintf(" It's a %s title", pick.Category)
		if pick.PageCount > 0 {
			reply += fmt.Sprintf(" at %d pages", pick.PageCount)
		}
		reply += "."
	} else if pick.PageCount > 0 {
		reply += fmt.Sprintf(" It runs %d pages.", pick.PageCount)
	}
	return reply
}

func (s *service) byAuthor(ctx context.Context, msg string) string {
	m := authorPattern.FindStringSubmatch(msg)
	if m == nil {
		return defaultReply
	}
	author := strings.Trim(strings.TrimSpace(m[1]), "?!.")
	if author == "" {
		return defaultReply
	}

	books, err := s.cat.SearchByAuthor(ctx, author, 3)
	if err != nil {
		s.log.Error("chat author search", "author", author, "err", err)
		return apologyReply
	}
	if len(books) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find any books by %s.", author)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I found by %s:\n", author)
	for _, bk := range books {
		status := "available"
		if !bk.IsAvailable {
			status = "checked out"
		}
		fmt.Fprintf(&b, "- '%s' by %s (%s)\n", bk.Title, bk.Author, status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *service) popular(ctx context.Context) string {
	top, err := s.cat.TopRatedAvailable(ctx, 3)
	if err != nil {
		s.log.Error("chat popular", "err", err)
		return apologyReply
	}
	if len(top) == 0 {
		return "Sorry, I don't have enough ratings yet to pick favourites."
	}

	var b strings.Builder
	b.WriteString("Our top rated available books:\n")
	for i, rb := range top {
		fmt.Fprintf(&b, "%d. '%s' by %s - %.1f stars\n", i+1, rb.Title, rb.Author, rb.AvgRating)
	}
	return strings.TrimRight(b.String(), "\n")
}
