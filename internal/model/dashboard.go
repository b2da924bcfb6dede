package model

// CardTotals carries the four dashboard overview figures.
type CardTotals struct {
	InvoiceCount  int    `json:"invoice_count"`
	CustomerCount int    `json:"customer_count"`
	TotalPaid     string `json:"total_paid"`
	TotalPending  string `json:"total_pending"`
}

// RevenuePoint is one month of the revenue chart.
type RevenuePoint struct {
	Month   string `json:"month" db:"month"`
	Revenue int64  `json:"revenue" db:"revenue"` // major units, chart-friendly
}
