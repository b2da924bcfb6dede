package model

// Invoice event actions carried on the invoices.events topic.
const (
	InvoiceCreated = "created"
	InvoiceUpdated = "updated"
	InvoiceDeleted = "deleted"
)

// InvoiceEvent is the outbox payload published after each invoice mutation.
// AmountDelta is the signed cents change the mutation applied (new minus old;
// negative for deletes) so the revenue projector can fold it in.
type InvoiceEvent struct {
	ID          string        `json:"id"`
	Action      string        `json:"action"`
	CustomerID  string        `json:"customer_id"`
	AmountDelta int64         `json:"amount_delta"`
	Status      InvoiceStatus `json:"status"`
	Date        string        `json:"date"` // invoice date, YYYY-MM-DD
}
