// service/checkout/overdue_service_test.go
package checkoutsvc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	checkoutrepo "pageflow/repository/checkout"
	checkoutsvc "pageflow/service/checkout"
)

type overdueRepoMock struct {
	listOverdueFn func(ctx context.Context, asOf time.Time) ([]checkoutrepo.Row, error)
}

func (m *overdueRepoMock) ListOverdue(ctx context.Context, asOf time.Time) ([]checkoutrepo.Row, error) {
	return m.listOverdueFn(ctx, asOf)
}

func TestSweep(t *testing.T) {
	checkedOut := time.Now().UTC().Add(-6 * 24 * time.Hour)
	m := &overdueRepoMock{
		listOverdueFn: func(ctx context.Context, asOf time.Time) ([]checkoutrepo.Row, error) {
			if asOf.Before(checkedOut) {
				return nil, errors.New("asOf must be now-ish")
			}
			return []checkoutrepo.Row{
				{ID: 1, BookID: 2, BookTitle: "Dune", UserID: 1, UserName: "alice", CheckedOutAt: checkedOut},
			}, nil
		},
	}
	sw := checkoutsvc.NewSweeper(m, discardLog())

	out, err := sw.Sweep(context.Background())
	if err != nil || len(out) != 1 {
		t.Fatalf("sweep: %v %v", out, err)
	}
	if out[0].DueDate.Sub(out[0].CheckoutDate) != checkoutsvc.LoanPeriod {
		t.Fatalf("due date law violated: %+v", out[0])
	}
	if !out[0].DueDate.Before(time.Now().UTC()) {
		t.Fatalf("swept checkout is not overdue: %+v", out[0])
	}
}

func TestSweep_Error(t *testing.T) {
	boom := errors.New("db down")
	m := &overdueRepoMock{
		listOverdueFn: func(ctx context.Context, asOf time.Time) ([]checkoutrepo.Row, error) {
			return nil, boom
		},
	}
	sw := checkoutsvc.NewSweeper(m, discardLog())
	if _, err := sw.Sweep(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}
