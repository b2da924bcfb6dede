package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/acmelabs/invoice-dashboard/internal/model"
)

func TestListDropsUnresolvedCustomers(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{
		sel: func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*[]invoiceRow) = []invoiceRow{
				{
					ID: "inv-1", Amount: 1234, Date: date, Status: model.StatusPaid,
					CustomerName:  sql.NullString{String: "Lee Robinson", Valid: true},
					CustomerEmail: sql.NullString{String: "lee@robinson.com", Valid: true},
					CustomerImage: sql.NullString{String: "/customers/lee.png", Valid: true},
				},
				{
					// dangling customer reference: join came back NULL
					ID: "inv-2", Amount: 500, Date: date, Status: model.StatusPending,
				},
			}
			return nil
		},
	}

	views, err := NewInvoicesRepository(db).List(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("len = %d, want 1 (null-customer row dropped)", len(views))
	}
	v := views[0]
	if v.ID != "inv-1" || v.Amount != "$12.34" || v.Date != "2024-06-01" {
		t.Errorf("unexpected view: %+v", v)
	}
	if v.CustomerName != "Lee Robinson" {
		t.Errorf("CustomerName = %q", v.CustomerName)
	}
}

func TestListBindsSearchPattern(t *testing.T) {
	var gotQuery string
	var gotArgs []interface{}
	db := &fakeDB{
		sel: func(_ context.Context, dest interface{}, query string, args ...interface{}) error {
			gotQuery, gotArgs = query, args
			*dest.(*[]invoiceRow) = nil
			return nil
		},
	}

	if _, err := NewInvoicesRepository(db).List(context.Background(), "lee", 3); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !strings.Contains(gotQuery, "ILIKE $1") {
		t.Errorf("filter not parameterized: %s", gotQuery)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "%lee%" {
		t.Errorf("args = %v, want [%%lee%%]", gotArgs)
	}
	if !strings.Contains(gotQuery, "OFFSET 12") {
		t.Errorf("page 3 should start at offset 12: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "ORDER BY i.date DESC") {
		t.Errorf("missing date-descending order: %s", gotQuery)
	}
}

func TestListPropagatesStoreError(t *testing.T) {
	boom := errors.New("timeout")
	db := &fakeDB{
		sel: func(_ context.Context, _ interface{}, _ string, _ ...interface{}) error {
			return boom
		},
	}

	_, err := NewInvoicesRepository(db).List(context.Background(), "", 1)
	var qerr *QueryError
	if !errors.As(err, &qerr) || !errors.Is(err, boom) {
		t.Fatalf("expected *QueryError wrapping store error, got %v", err)
	}
}

func TestCountPages(t *testing.T) {
	for _, tc := range []struct {
		total int
		want  int
	}{
		{13, 3},
		{6, 1},
		{0, 0},
	} {
		db := &fakeDB{
			get: func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*int) = tc.total
				return nil
			},
		}
		got, err := NewInvoicesRepository(db).CountPages(context.Background(), "")
		if err != nil {
			t.Fatalf("CountPages: %v", err)
		}
		if got != tc.want {
			t.Errorf("CountPages with %d rows = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db := &fakeDB{
		get: func(_ context.Context, _ interface{}, _ string, _ ...interface{}) error {
			return sql.ErrNoRows
		},
	}

	form, err := NewInvoicesRepository(db).GetByID(context.Background(), "missing")
	if form != nil {
		t.Fatalf("expected nil form, got %+v", form)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// GetByID leaves amount in minor units; it backs the edit form, not a
// display view.
func TestGetByIDKeepsMinorUnits(t *testing.T) {
	db := &fakeDB{
		get: func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*model.InvoiceForm) = model.InvoiceForm{
				ID: "inv-1", CustomerID: "cust-lee", Amount: 1234, Status: model.StatusPending,
			}
			return nil
		},
	}

	form, err := NewInvoicesRepository(db).GetByID(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if form.Amount != 1234 {
		t.Errorf("Amount = %d, want raw cents 1234", form.Amount)
	}
}
