package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acmelabs/invoice-dashboard/internal/kafka"
	"github.com/acmelabs/invoice-dashboard/internal/metrics"
	"github.com/acmelabs/invoice-dashboard/internal/model"
)

// RevenueProjector:
// - fetches invoice events from Kafka,
// - folds amount deltas per (year, month),
// - batch-inserts delta rows into the ClickHouse revenue table
//   (SummingMergeTree collapses them on merge/read).
type RevenueProjector struct {
	// Dependencies
	CH       *sqlx.DB // ClickHouse connection
	Consumer *kafka.Consumer

	// Behavior
	BatchSize int           // max buffered deltas per flush
	BatchWait time.Duration // max time to wait before flush
}

// NewRevenueProjector builds a projector with sane defaults.
func NewRevenueProjector(ch *sqlx.DB, consumer *kafka.Consumer) *RevenueProjector {
	return &RevenueProjector{
		CH:        ch,
		Consumer:  consumer,
		BatchSize: 200,
		BatchWait: 300 * time.Millisecond,
	}
}

type monthKey struct {
	year  int
	month time.Month
}

// Run starts the projector and blocks until ctx is cancelled.
func (p *RevenueProjector) Run(ctx context.Context) error {
	if p.BatchSize <= 0 {
		p.BatchSize = 200
	}
	if p.BatchWait <= 0 {
		p.BatchWait = 300 * time.Millisecond
	}

	tick := time.NewTicker(p.BatchWait)
	defer tick.Stop()

	deltas := make(map[monthKey]int64, 16)
	buffered := 0

	flush := func() {
		if len(deltas) == 0 {
			return
		}
		if err := p.insertDeltas(ctx, deltas); err != nil {
			// at-least-once: rows re-arrive after restart, summing absorbs
			// only committed offsets, so log and retry on the next tick
			log.Printf("[projector] flush err: %v", err)
			return
		}
		log.Printf("[projector] flushed months=%d", len(deltas))
		deltas = make(map[monthKey]int64, 16)
		buffered = 0
	}

	// Fetcher goroutine
	evCh := make(chan model.InvoiceEvent, p.BatchSize*2)
	go func() {
		defer close(evCh)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				m, err := p.Consumer.Fetch(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("[projector] kafka fetch err: %v", err)
					time.Sleep(200 * time.Millisecond)
					continue
				}

				var ev model.InvoiceEvent
				if err := json.Unmarshal(m.Value, &ev); err != nil || ev.ID == "" {
					_ = p.Consumer.Commit(ctx, m) // poison -> commit, skip
					metrics.RevenueEventsTotal.WithLabelValues("skipped").Inc()
					if err != nil {
						log.Printf("[projector] bad event json: %v", err)
					}
					continue
				}

				evCh <- ev
				// Always commit (at-least-once)
				if err := p.Consumer.Commit(ctx, m); err != nil {
					log.Printf("[projector] commit err: %v", err)
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			flush()
			return nil

		case ev, ok := <-evCh:
			if !ok {
				flush()
				return nil
			}
			if !p.apply(deltas, ev) {
				continue
			}
			buffered++
			if buffered >= p.BatchSize {
				flush()
			}

		case <-tick.C:
			flush()
		}
	}
}

// apply folds one event into the delta map. Events with a zero delta or an
// unparsable date are skipped.
func (p *RevenueProjector) apply(deltas map[monthKey]int64, ev model.InvoiceEvent) bool {
	if ev.AmountDelta == 0 {
		metrics.RevenueEventsTotal.WithLabelValues("skipped").Inc()
		return false
	}
	d, err := time.Parse("2006-01-02", ev.Date)
	if err != nil {
		log.Printf("[projector] bad event date %q: %v", ev.Date, err)
		metrics.RevenueEventsTotal.WithLabelValues("skipped").Inc()
		return false
	}

	deltas[monthKey{year: d.Year(), month: d.Month()}] += ev.AmountDelta
	metrics.RevenueEventsTotal.WithLabelValues("applied").Inc()
	return true
}

// insertDeltas writes one delta row per month into the summing table.
func (p *RevenueProjector) insertDeltas(ctx context.Context, deltas map[monthKey]int64) error {
	const q = `
		INSERT INTO acmedash.revenue (year, month_num, month, amount)
		VALUES (?, ?, ?, ?)
	`
	for key, amount := range deltas {
		_, err := p.CH.ExecContext(ctx, q,
			key.year, int(key.month), key.month.String()[:3], amount,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
