package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/acmelabs/invoice-dashboard/internal/config"
	"github.com/acmelabs/invoice-dashboard/internal/db"
	"github.com/acmelabs/invoice-dashboard/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// 2) connect Postgres
		pgDB, err := db.NewPostgresConnection(cfg.Postgres.DSN, db.PostgresOpts{
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
			PingTimeout:     cfg.Postgres.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer pgDB.Close()

		log.Println(">> Seeding demo data...")

		if err := seedUsers(pgDB); err != nil {
			return err
		}
		if err := seedCustomers(pgDB); err != nil {
			return err
		}
		if err := seedInvoices(pgDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

// seedUsers inserts one deterministic demo admin (idempotent).
func seedUsers(dbx *sqlx.DB) error {
	const q = `
INSERT INTO users
    (name, email, api_key, status, rate_limit_rps, created_at, updated_at)
VALUES
    ($1, $2, $3, $4, $5, NOW(), NOW())
ON CONFLICT (email) DO UPDATE SET
    name        = EXCLUDED.name,
    api_key     = EXCLUDED.api_key,
    status      = EXCLUDED.status,
    rate_limit_rps = EXCLUDED.rate_limit_rps,
    updated_at  = NOW()
`
	_, err := dbx.Exec(q,
		"Admin", "admin@acme.dev", "11111111111111111111111111111111", "active", intptr(20),
	)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	return nil
}

// seedCustomers inserts deterministic demo customers (idempotent).
func seedCustomers(dbx *sqlx.DB) error {
	customers := []model.Customer{
		{ID: "cust-delba", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
		{ID: "cust-lee", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
		{ID: "cust-hector", Name: "Hector Simpson", Email: "hector@simpson.com", ImageURL: "/customers/hector-simpson.png"},
		{ID: "cust-steven", Name: "Steven Tey", Email: "steven@tey.com", ImageURL: "/customers/steven-tey.png"},
		{ID: "cust-steph", Name: "Steph Dietz", Email: "steph@dietz.com", ImageURL: "/customers/steph-dietz.png"},
		{ID: "cust-michael", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
		{ID: "cust-evil", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
		{ID: "cust-emil", Name: "Emil Kowalski", Email: "emil@kowalski.com", ImageURL: "/customers/emil-kowalski.png"},
	}

	const q = `
INSERT INTO customers
    (id, name, email, image_url, created_at, updated_at)
VALUES
    ($1, $2, $3, $4, $5, $5)
ON CONFLICT (id) DO UPDATE SET
    name       = EXCLUDED.name,
    email      = EXCLUDED.email,
    image_url  = EXCLUDED.image_url,
    updated_at = EXCLUDED.updated_at
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	for _, c := range customers {
		if _, err := tx.Exec(q, c.ID, c.Name, c.Email, c.ImageURL, now); err != nil {
			return fmt.Errorf("insert customer %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customers: %w", err)
	}
	return nil
}

// seedInvoices inserts deterministic demo invoices across the last year
// (idempotent).
func seedInvoices(dbx *sqlx.DB) error {
	type seedInvoice struct {
		id         string
		customerID string
		amount     int64 // cents
		status     model.InvoiceStatus
		monthsAgo  int
	}

	invoices := []seedInvoice{
		{"inv-0001", "cust-delba", 15795, model.StatusPending, 0},
		{"inv-0002", "cust-lee", 20348, model.StatusPending, 0},
		{"inv-0003", "cust-hector", 106000, model.StatusPaid, 1},
		{"inv-0004", "cust-steven", 44800, model.StatusPaid, 1},
		{"inv-0005", "cust-steph", 34577, model.StatusPending, 2},
		{"inv-0006", "cust-michael", 54246, model.StatusPending, 3},
		{"inv-0007", "cust-evil", 66666, model.StatusPending, 3},
		{"inv-0008", "cust-emil", 32545, model.StatusPaid, 4},
		{"inv-0009", "cust-delba", 1250, model.StatusPaid, 5},
		{"inv-0010", "cust-lee", 8546, model.StatusPaid, 6},
		{"inv-0011", "cust-hector", 500, model.StatusPaid, 7},
		{"inv-0012", "cust-steven", 8945, model.StatusPaid, 8},
		{"inv-0013", "cust-steph", 8945, model.StatusPaid, 9},
	}

	const q = `
INSERT INTO invoices
    (id, customer_id, amount, status, date, created_at, updated_at)
VALUES
    ($1, $2, $3, $4, $5, NOW(), NOW())
ON CONFLICT (id) DO UPDATE SET
    customer_id = EXCLUDED.customer_id,
    amount      = EXCLUDED.amount,
    status      = EXCLUDED.status,
    date        = EXCLUDED.date,
    updated_at  = NOW()
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	for _, inv := range invoices {
		date := now.AddDate(0, -inv.monthsAgo, 0).Format("2006-01-02")
		if _, err := tx.Exec(q, inv.id, inv.customerID, inv.amount, inv.status.String(), date); err != nil {
			return fmt.Errorf("insert invoice %q: %w", inv.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit invoices: %w", err)
	}
	return nil
}

func intptr(i int) *int { return &i }
