package model

import "time"

// Customer is the DB entity persisted in the customers table.
type Customer struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CustomerField is the minimal shape backing select dropdowns.
type CustomerField struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CustomerSummary is a customer-table row with per-status invoice subtotals.
type CustomerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int    `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
	TotalDelayed  string `json:"total_delayed"`
}
