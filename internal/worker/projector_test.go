package worker

import (
	"testing"
	"time"

	"github.com/acmelabs/invoice-dashboard/internal/model"
)

func TestApplyFoldsDeltasPerMonth(t *testing.T) {
	p := &RevenueProjector{}
	deltas := map[monthKey]int64{}

	events := []model.InvoiceEvent{
		{ID: "inv-1", Action: model.InvoiceCreated, AmountDelta: 1000, Date: "2024-06-10"},
		{ID: "inv-2", Action: model.InvoiceCreated, AmountDelta: 500, Date: "2024-06-20"},
		{ID: "inv-1", Action: model.InvoiceDeleted, AmountDelta: -1000, Date: "2024-07-01"},
	}
	for _, ev := range events {
		if !p.apply(deltas, ev) {
			t.Fatalf("apply(%+v) skipped", ev)
		}
	}

	june := monthKey{year: 2024, month: time.June}
	july := monthKey{year: 2024, month: time.July}
	if deltas[june] != 1500 {
		t.Errorf("june delta = %d, want 1500", deltas[june])
	}
	if deltas[july] != -1000 {
		t.Errorf("july delta = %d, want -1000", deltas[july])
	}
}

func TestApplySkipsZeroAndBadDates(t *testing.T) {
	p := &RevenueProjector{}
	deltas := map[monthKey]int64{}

	if p.apply(deltas, model.InvoiceEvent{ID: "inv-1", AmountDelta: 0, Date: "2024-06-10"}) {
		t.Error("zero delta should be skipped")
	}
	if p.apply(deltas, model.InvoiceEvent{ID: "inv-2", AmountDelta: 100, Date: "June 10"}) {
		t.Error("unparsable date should be skipped")
	}
	if len(deltas) != 0 {
		t.Errorf("deltas = %v, want empty", deltas)
	}
}
