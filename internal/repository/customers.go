package repository

import (
	"context"

	"github.com/acmelabs/invoice-dashboard/internal/model"
	"github.com/acmelabs/invoice-dashboard/internal/money"
	"github.com/acmelabs/invoice-dashboard/internal/query"
)

// CustomersRepository defines reads over the customers table.
type CustomersRepository interface {
	List(ctx context.Context) ([]model.CustomerField, error)
	ListWithTotals(ctx context.Context, search string) ([]model.CustomerSummary, error)
}

type CustomersRepositoryImpl struct {
	db Querier
}

func NewCustomersRepository(db Querier) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

// List returns all customers as (id, name) pairs sorted by name.
func (r *CustomersRepositoryImpl) List(ctx context.Context) ([]model.CustomerField, error) {
	var out []model.CustomerField
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, name
		  FROM customers
		 ORDER BY name ASC
	`)
	if err != nil {
		return nil, queryErr("list customers", err)
	}
	return out, nil
}

type customerTotalsRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	ImageURL      string `db:"image_url"`
	TotalInvoices int    `db:"total_invoices"`
	TotalPending  int64  `db:"total_pending"`
	TotalPaid     int64  `db:"total_paid"`
	TotalDelayed  int64  `db:"total_delayed"`
}

// ListWithTotals returns customers whose name or email contains the search
// term (case-insensitive; empty term matches all), each with invoice count
// and per-status subtotals. Customers without invoices yield zero totals.
func (r *CustomersRepositoryImpl) ListWithTotals(ctx context.Context, search string) ([]model.CustomerSummary, error) {
	q := `
		SELECT c.id, c.name, c.email, c.image_url,
		       COUNT(i.id) AS total_invoices,
		       COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0) AS total_pending,
		       COALESCE(SUM(CASE WHEN i.status = 'paid'    THEN i.amount ELSE 0 END), 0) AS total_paid,
		       COALESCE(SUM(CASE WHEN i.status = 'delayed' THEN i.amount ELSE 0 END), 0) AS total_delayed
		  FROM customers c
		  LEFT JOIN invoices i ON i.customer_id = c.id
	`
	args := []interface{}{}
	if pat := query.Pattern(search); pat != "" {
		q += ` WHERE c.name ILIKE $1 OR c.email ILIKE $1`
		args = append(args, pat)
	}
	q += `
		 GROUP BY c.id, c.name, c.email, c.image_url
		 ORDER BY c.name ASC
	`

	var rows []customerTotalsRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, queryErr("list customers with totals", err)
	}

	out := make([]model.CustomerSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.CustomerSummary{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			ImageURL:      row.ImageURL,
			TotalInvoices: row.TotalInvoices,
			TotalPending:  money.FormatCents(row.TotalPending),
			TotalPaid:     money.FormatCents(row.TotalPaid),
			TotalDelayed:  money.FormatCents(row.TotalDelayed),
		})
	}
	return out, nil
}
