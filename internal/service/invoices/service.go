// Package invoices implements the invoice mutation paths: form validation,
// cents conversion, and the transactional write of the invoice row plus its
// outbox event.
package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acmelabs/invoice-dashboard/internal/metrics"
	"github.com/acmelabs/invoice-dashboard/internal/model"
	"github.com/acmelabs/invoice-dashboard/internal/money"
	"github.com/acmelabs/invoice-dashboard/internal/repository"
	"github.com/acmelabs/invoice-dashboard/internal/util"
)

// EventsTopic is the Kafka topic invoice outbox events land on.
const EventsTopic = "invoices.events"

// ValidationError reports per-field problems with submitted form data.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Form is the caller-submitted invoice payload. Amount arrives in major
// units (dollars) and is converted to cents on write.
type Form struct {
	CustomerID string   `json:"customer_id"`
	Amount     *float64 `json:"amount"`
	Status     string   `json:"status"`
}

// Service persists invoice mutations and their outbox events atomically.
type Service struct {
	db     *sqlx.DB
	repo   repository.InvoicesRepository
	outbox repository.OutboxRepository
}

// New constructs the invoices service.
func New(db *sqlx.DB, repo repository.InvoicesRepository, outbox repository.OutboxRepository) *Service {
	return &Service{db: db, repo: repo, outbox: outbox}
}

// validate checks the form against the write schema: required customer,
// numeric amount, status within the writable enum.
func validate(f Form) (model.InvoiceStatus, error) {
	fields := map[string]string{}

	if strings.TrimSpace(f.CustomerID) == "" {
		fields["customer_id"] = "required"
	}
	if f.Amount == nil {
		fields["amount"] = "required"
	}

	status, ok := model.ParseInvoiceStatus(f.Status)
	if strings.TrimSpace(f.Status) == "" {
		fields["status"] = "required"
	} else if !ok {
		fields["status"] = "must be pending or paid"
	}

	if len(fields) > 0 {
		return "", &ValidationError{Fields: fields}
	}
	return status, nil
}

// Create validates the form and writes a new invoice dated today, returning
// the generated ID.
func (s *Service) Create(ctx context.Context, f Form) (string, error) {
	status, err := validate(f)
	if err != nil {
		return "", err
	}

	inv := model.Invoice{
		ID:         util.New(),
		CustomerID: strings.TrimSpace(f.CustomerID),
		Amount:     money.ToCents(*f.Amount),
		Status:     status,
		Date:       time.Now().UTC().Truncate(24 * time.Hour),
	}

	ev := model.InvoiceEvent{
		ID:          inv.ID,
		Action:      model.InvoiceCreated,
		CustomerID:  inv.CustomerID,
		AmountDelta: inv.Amount,
		Status:      inv.Status,
		Date:        inv.Date.Format("2006-01-02"),
	}

	if err := s.mutate(ctx, ev, func(tx *sqlx.Tx) error {
		return s.repo.InsertTx(ctx, tx, inv)
	}); err != nil {
		return "", fmt.Errorf("create invoice: %w", err)
	}

	metrics.InvoicesTotal.WithLabelValues(model.InvoiceCreated).Inc()
	return inv.ID, nil
}

// Update validates the form and rewrites an existing invoice. The event
// carries the amount delta against the stored row.
func (s *Service) Update(ctx context.Context, id string, f Form) error {
	status, err := validate(f)
	if err != nil {
		return err
	}

	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	inv := model.Invoice{
		ID:         id,
		CustomerID: strings.TrimSpace(f.CustomerID),
		Amount:     money.ToCents(*f.Amount),
		Status:     status,
	}

	ev := model.InvoiceEvent{
		ID:          id,
		Action:      model.InvoiceUpdated,
		CustomerID:  inv.CustomerID,
		AmountDelta: inv.Amount - prev.Amount,
		Status:      inv.Status,
		Date:        time.Now().UTC().Format("2006-01-02"),
	}

	if err := s.mutate(ctx, ev, func(tx *sqlx.Tx) error {
		return s.repo.UpdateTx(ctx, tx, inv)
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update invoice: %w", err)
	}

	metrics.InvoicesTotal.WithLabelValues(model.InvoiceUpdated).Inc()
	return nil
}

// Delete removes an invoice and emits a compensating event.
func (s *Service) Delete(ctx context.Context, id string) error {
	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ev := model.InvoiceEvent{
		ID:          id,
		Action:      model.InvoiceDeleted,
		CustomerID:  prev.CustomerID,
		AmountDelta: -prev.Amount,
		Status:      prev.Status,
		Date:        time.Now().UTC().Format("2006-01-02"),
	}

	if err := s.mutate(ctx, ev, func(tx *sqlx.Tx) error {
		return s.repo.DeleteTx(ctx, tx, id)
	}); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	metrics.InvoicesTotal.WithLabelValues(model.InvoiceDeleted).Inc()
	return nil
}

// mutate runs the row write and the outbox insert in one transaction.
func (s *Service) mutate(ctx context.Context, ev model.InvoiceEvent, write func(*sqlx.Tx) error) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := write(tx); err != nil {
		return err
	}

	if err := s.outbox.Insert(ctx, tx, "invoice", ev.ID, EventsTopic, payload); err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}

	return tx.Commit()
}
