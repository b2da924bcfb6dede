package worker

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/acmelabs/invoice-dashboard/internal/config"
	"github.com/acmelabs/invoice-dashboard/internal/db"
	"github.com/acmelabs/invoice-dashboard/internal/kafka"
	"github.com/acmelabs/invoice-dashboard/internal/metrics"
	"github.com/acmelabs/invoice-dashboard/internal/service/invoices"
	"github.com/acmelabs/invoice-dashboard/internal/worker"
)

var projectorCmd = &cobra.Command{
	Use:   "projector",
	Short: "Run revenue projector (invoice events -> ClickHouse)",
	RunE:  runProjector,
}

func runProjector(cmd *cobra.Command, args []string) error {
	// 1) load config
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// 2) ClickHouse connection
	chDB, err := db.NewClickHouseConnection(db.ClickHouseOpts{
		DSN:             cfg.ClickHouse.DSN,
		MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
		MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ClickHouse.ConnMaxIdleTime,
		PingTimeout:     cfg.ClickHouse.PingTimeout,
	})
	if err != nil {
		return fmt.Errorf("clickhouse connect: %w", err)
	}
	defer chDB.Close()

	// 3) kafka consumer
	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = "acmedash-projector"
	}

	consumer := kafka.NewConsumerFromConfig(kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          invoices.EventsTopic,
		GroupID:        groupID,
		MinBytes:       cfg.Kafka.MinBytes,
		MaxBytes:       cfg.Kafka.MaxBytes,
		CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond,
	})
	defer consumer.Close()

	p := worker.NewRevenueProjector(chDB, consumer)

	// tune knobs
	if cfg.Projector.BatchSize > 0 {
		p.BatchSize = cfg.Projector.BatchSize
	}
	if cfg.Projector.BatchWait > 0 {
		p.BatchWait = cfg.Projector.BatchWait
	}

	// 4) graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf(">> projector started topic=%s group=%s batchSize=%d batchWait=%s",
		invoices.EventsTopic, groupID, p.BatchSize, p.BatchWait)

	return p.Run(ctx)
}
