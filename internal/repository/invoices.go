package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acmelabs/invoice-dashboard/internal/model"
	"github.com/acmelabs/invoice-dashboard/internal/money"
	"github.com/acmelabs/invoice-dashboard/internal/query"
)

const latestLimit = 5

// InvoicesRepository defines reads and transactional writes for the
// invoices table.
type InvoicesRepository interface {
	List(ctx context.Context, search string, page int) ([]model.InvoiceView, error)
	CountPages(ctx context.Context, search string) (int, error)
	GetByID(ctx context.Context, id string) (*model.InvoiceForm, error)
	Latest(ctx context.Context) ([]model.InvoiceView, error)

	InsertTx(ctx context.Context, tx *sqlx.Tx, inv model.Invoice) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, inv model.Invoice) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id string) error
}

type InvoicesRepositoryImpl struct {
	db Querier
}

func NewInvoicesRepository(db Querier) *InvoicesRepositoryImpl {
	return &InvoicesRepositoryImpl{db: db}
}

var _ InvoicesRepository = (*InvoicesRepositoryImpl)(nil)

// invoiceRow is the joined listing row. Customer columns are nullable: the
// unfiltered listing LEFT JOINs so that invoices with a dangling customer
// reference come back with NULLs and get dropped, not errored.
type invoiceRow struct {
	ID            string              `db:"id"`
	Amount        int64               `db:"amount"`
	Date          time.Time           `db:"date"`
	Status        model.InvoiceStatus `db:"status"`
	CustomerName  sql.NullString      `db:"customer_name"`
	CustomerEmail sql.NullString      `db:"customer_email"`
	CustomerImage sql.NullString      `db:"customer_image_url"`
}

func (r invoiceRow) view() model.InvoiceView {
	return model.InvoiceView{
		ID:               r.ID,
		Amount:           money.FormatCents(r.Amount),
		Date:             r.Date.Format("2006-01-02"),
		Status:           r.Status,
		CustomerName:     r.CustomerName.String,
		CustomerEmail:    r.CustomerEmail.String,
		CustomerImageURL: r.CustomerImage.String,
	}
}

// List returns one page of invoices joined to their customers, newest first.
// A non-empty search term filters on the customer name (case-insensitive,
// bound parameter). Rows whose customer join resolved to nothing are dropped.
func (r *InvoicesRepositoryImpl) List(ctx context.Context, search string, page int) ([]model.InvoiceView, error) {
	lq := query.BuildList(search, page)

	q := `
		SELECT i.id, i.amount, i.date, i.status,
		       c.name      AS customer_name,
		       c.email     AS customer_email,
		       c.image_url AS customer_image_url
		  FROM invoices i
		  LEFT JOIN customers c ON c.id = i.customer_id
	`
	args := []interface{}{}
	if lq.NamePattern != "" {
		q += ` WHERE c.id IS NOT NULL AND c.name ILIKE $1`
		args = append(args, lq.NamePattern)
	}
	q += fmt.Sprintf(" ORDER BY i.date DESC LIMIT %d OFFSET %d", lq.Limit, lq.Offset)

	var rows []invoiceRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, queryErr("list invoices", err)
	}

	out := make([]model.InvoiceView, 0, len(rows))
	for _, row := range rows {
		if !row.CustomerName.Valid {
			continue
		}
		out = append(out, row.view())
	}
	return out, nil
}

// CountPages counts invoices matching the same filter as List and derives
// the page count.
func (r *InvoicesRepositoryImpl) CountPages(ctx context.Context, search string) (int, error) {
	cq := query.BuildCount(search)

	q := `
		SELECT COUNT(*)
		  FROM invoices i
		  JOIN customers c ON c.id = i.customer_id
	`
	args := []interface{}{}
	if cq.NamePattern != "" {
		q += ` WHERE c.name ILIKE $1`
		args = append(args, cq.NamePattern)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, q, args...); err != nil {
		return 0, queryErr("count invoices", err)
	}
	return query.TotalPages(total), nil
}

// GetByID fetches a single invoice for the edit form. Amount stays in minor
// units here; every other read path formats it.
func (r *InvoicesRepositoryImpl) GetByID(ctx context.Context, id string) (*model.InvoiceForm, error) {
	var f model.InvoiceForm
	err := r.db.GetContext(ctx, &f, `
		SELECT id, customer_id, amount, status
		  FROM invoices
		 WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, queryErr("get invoice", err)
	}
	return &f, nil
}

// Latest returns the five most recent invoices with formatted amounts.
func (r *InvoicesRepositoryImpl) Latest(ctx context.Context) ([]model.InvoiceView, error) {
	q := fmt.Sprintf(`
		SELECT i.id, i.amount, i.date, i.status,
		       c.name      AS customer_name,
		       c.email     AS customer_email,
		       c.image_url AS customer_image_url
		  FROM invoices i
		  JOIN customers c ON c.id = i.customer_id
		 ORDER BY i.date DESC
		 LIMIT %d
	`, latestLimit)

	var rows []invoiceRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, queryErr("latest invoices", err)
	}

	out := make([]model.InvoiceView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.view())
	}
	return out, nil
}

func (r *InvoicesRepositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, inv model.Invoice) error {
	const q = `
		INSERT INTO invoices
		    (id, customer_id, amount, status, date, created_at, updated_at)
		VALUES
		    ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := tx.ExecContext(ctx, q, inv.ID, inv.CustomerID, inv.Amount, inv.Status.String(), inv.Date)
	return err
}

func (r *InvoicesRepositoryImpl) UpdateTx(ctx context.Context, tx *sqlx.Tx, inv model.Invoice) error {
	const q = `
		UPDATE invoices
		   SET customer_id = $1, amount = $2, status = $3, updated_at = NOW()
		 WHERE id = $4
	`
	res, err := tx.ExecContext(ctx, q, inv.CustomerID, inv.Amount, inv.Status.String(), inv.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("invoice %s: %w", inv.ID, ErrNotFound)
	}
	return nil
}

func (r *InvoicesRepositoryImpl) DeleteTx(ctx context.Context, tx *sqlx.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}
