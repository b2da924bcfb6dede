package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	InvoicesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acmedash_invoices_total",
			Help: "Invoice mutations by action",
		},
		[]string{"action"}, // created|updated|deleted
	)

	RevenueEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acmedash_revenue_events_total",
			Help: "Invoice events handled by the revenue projector",
		},
		[]string{"outcome"}, // applied|skipped
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		InvoicesTotal,
		RevenueEventsTotal,
	)
}
