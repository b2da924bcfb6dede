package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/acmelabs/invoice-dashboard/internal/model"
)

func TestCardTotals(t *testing.T) {
	db := &fakeDB{
		get: func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
			n := dest.(*int)
			if strings.Contains(query, "FROM invoices") {
				*n = 3
			} else {
				*n = 2
			}
			return nil
		},
		sel: func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			rows := dest.(*[]statusAmount)
			*rows = []statusAmount{
				{Status: model.StatusPaid, Amount: 1000},
				{Status: model.StatusPending, Amount: 500},
				{Status: model.StatusPaid, Amount: 250},
			}
			return nil
		},
	}

	totals, err := NewDashboardRepository(db).CardTotals(context.Background())
	if err != nil {
		t.Fatalf("CardTotals: %v", err)
	}
	if totals.InvoiceCount != 3 {
		t.Errorf("InvoiceCount = %d, want 3", totals.InvoiceCount)
	}
	if totals.CustomerCount != 2 {
		t.Errorf("CustomerCount = %d, want 2", totals.CustomerCount)
	}
	if totals.TotalPaid != "$12.50" {
		t.Errorf("TotalPaid = %q, want $12.50", totals.TotalPaid)
	}
	if totals.TotalPending != "$5.00" {
		t.Errorf("TotalPending = %q, want $5.00", totals.TotalPending)
	}
}

// If any one of the three reads fails, the whole call fails; no partial
// aggregate comes back.
func TestCardTotalsPartialFailure(t *testing.T) {
	boom := errors.New("connection reset")
	db := &fakeDB{
		get: func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
			if strings.Contains(query, "FROM customers") {
				return boom
			}
			*dest.(*int) = 3
			return nil
		},
		sel: func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*[]statusAmount) = []statusAmount{{Status: model.StatusPaid, Amount: 1000}}
			return nil
		},
	}

	totals, err := NewDashboardRepository(db).CardTotals(context.Background())
	if totals != nil {
		t.Fatalf("expected nil totals, got %+v", totals)
	}
	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("expected *QueryError, got %T (%v)", err, err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestSumByStatusIgnoresOtherStatuses(t *testing.T) {
	paid, pending := sumByStatus([]statusAmount{
		{Status: model.StatusPaid, Amount: 100},
		{Status: model.StatusPending, Amount: 200},
		{Status: model.StatusDelayed, Amount: 400},
		{Status: "unknown", Amount: 800},
	})
	if paid != 100 {
		t.Errorf("paid = %d, want 100", paid)
	}
	if pending != 200 {
		t.Errorf("pending = %d, want 200", pending)
	}
}
