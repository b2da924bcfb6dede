package model

import (
	"strings"
	"time"
)

type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
	// StatusDelayed shows up in customer-table subtotals; no write path
	// produces it today, but stored rows carrying it must still be read.
	StatusDelayed InvoiceStatus = "delayed"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// Valid reports whether s is a readable status.
func (s InvoiceStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid || s == StatusDelayed
}

// Writable reports whether s may be assigned through create/update forms.
func (s InvoiceStatus) Writable() bool {
	return s == StatusPending || s == StatusPaid
}

// ParseInvoiceStatus normalizes form input. Returns (value, true) if the
// status is writable; otherwise (pending, false).
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "paid":
		return StatusPaid, true
	default:
		return StatusPending, false
	}
}

// Invoice is the DB entity persisted in the invoices table.
type Invoice struct {
	ID         string        `db:"id"`
	CustomerID string        `db:"customer_id"`
	Amount     int64         `db:"amount"` // minor units (cents)
	Status     InvoiceStatus `db:"status"`
	Date       time.Time     `db:"date"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

// InvoiceView is an invoice row joined to its customer, amount already
// formatted for display.
type InvoiceView struct {
	ID               string        `json:"id"`
	Amount           string        `json:"amount"`
	Date             string        `json:"date"` // YYYY-MM-DD
	Status           InvoiceStatus `json:"status"`
	CustomerName     string        `json:"customer_name"`
	CustomerEmail    string        `json:"customer_email"`
	CustomerImageURL string        `json:"customer_image_url"`
}

// InvoiceForm is the single-invoice read backing the edit form. Amount stays
// in minor units: the form's numeric default expects cents, not a display
// string.
type InvoiceForm struct {
	ID         string        `json:"id" db:"id"`
	CustomerID string        `json:"customer_id" db:"customer_id"`
	Amount     int64         `json:"amount" db:"amount"`
	Status     InvoiceStatus `json:"status" db:"status"`
}
