package repository

import (
	"context"

	"github.com/acmelabs/invoice-dashboard/internal/model"
)

// RevenueRepository reads the monthly revenue series from ClickHouse
// (written by the projector worker; summing happens at read time).
type RevenueRepository interface {
	List(ctx context.Context) ([]model.RevenuePoint, error)
}

type revenueRepository struct {
	ch Querier // ClickHouse connection
}

func NewRevenueRepository(ch Querier) RevenueRepository {
	return &revenueRepository{ch: ch}
}

// List returns up to the last 12 months, oldest first, amounts in major
// units for charting.
func (r *revenueRepository) List(ctx context.Context) ([]model.RevenuePoint, error) {
	const q = `
		SELECT month, intDiv(sum(amount), 100) AS revenue
		FROM acmedash.revenue
		GROUP BY year, month_num, month
		ORDER BY year DESC, month_num DESC
		LIMIT 12
	`
	var rows []model.RevenuePoint
	if err := r.ch.SelectContext(ctx, &rows, q); err != nil {
		return nil, queryErr("list revenue", err)
	}

	// oldest first for the chart
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
