package checkoutsvc

import (
	"context"
	"log/slog"
	"time"

	checkoutrepo "pageflow/repository/checkout"
)

// Sweeper reports checkouts past their due date. It never mutates
// state; overdue books stay checked out until actually returned.
type Sweeper interface {
	Sweep(ctx context.Context) ([]CheckoutDTO, error)
	Run(ctx context.Context, every time.Duration)
}

type OverdueRepo interface {
	ListOverdue(ctx context.Context, asOf time.Time) ([]checkoutrepo.Row, error)
}

type sweeper struct {
	r   OverdueRepo
	log *slog.Logger
}

func NewSweeper(r OverdueRepo, log *slog.Logger) Sweeper {
	return &sweeper{r: r, log: log}
}

func (s *sweeper) Sweep(ctx context.Context) ([]CheckoutDTO, error) {
	rows, err := s.r.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

func (s *sweeper) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			out, err := s.Sweep(ctx)
			if err != nil {
				s.log.Error("overdue sweep", "err", err)
				continue
			}
			if len(out) > 0 {
				s.log.Warn("overdue checkouts", "count", len(out))
			}
		}
	}
}
