package repository

import (
	"context"
	"sync"

	"github.com/acmelabs/invoice-dashboard/internal/model"
	"github.com/acmelabs/invoice-dashboard/internal/money"
)

// DashboardRepository computes the overview card totals.
type DashboardRepository interface {
	CardTotals(ctx context.Context) (*model.CardTotals, error)
}

type DashboardRepositoryImpl struct {
	db Querier
}

func NewDashboardRepository(db Querier) *DashboardRepositoryImpl {
	return &DashboardRepositoryImpl{db: db}
}

var _ DashboardRepository = (*DashboardRepositoryImpl)(nil)

type statusAmount struct {
	Status model.InvoiceStatus `db:"status"`
	Amount int64               `db:"amount"`
}

// CardTotals issues its three reads concurrently and waits for all of them.
// If any read fails the whole call fails; a partial aggregate is never
// returned.
func (r *DashboardRepositoryImpl) CardTotals(ctx context.Context) (*model.CardTotals, error) {
	var (
		invoiceCount  int
		customerCount int
		pairs         []statusAmount
		errs          [3]error
		wg            sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		errs[0] = r.db.GetContext(ctx, &invoiceCount, `SELECT COUNT(*) FROM invoices`)
	}()
	go func() {
		defer wg.Done()
		errs[1] = r.db.GetContext(ctx, &customerCount, `SELECT COUNT(*) FROM customers`)
	}()
	go func() {
		defer wg.Done()
		errs[2] = r.db.SelectContext(ctx, &pairs, `SELECT status, amount FROM invoices`)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, queryErr("card totals", err)
		}
	}

	paid, pending := sumByStatus(pairs)
	return &model.CardTotals{
		InvoiceCount:  invoiceCount,
		CustomerCount: customerCount,
		TotalPaid:     money.FormatCents(paid),
		TotalPending:  money.FormatCents(pending),
	}, nil
}

// sumByStatus reduces status/amount pairs into paid and pending totals.
// Any other status is excluded from both sums.
func sumByStatus(pairs []statusAmount) (paid, pending int64) {
	for _, p := range pairs {
		switch p.Status {
		case model.StatusPaid:
			paid += p.Amount
		case model.StatusPending:
			pending += p.Amount
		}
	}
	return paid, pending
}
