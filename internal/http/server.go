package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/acmelabs/invoice-dashboard/internal/config"
	"github.com/acmelabs/invoice-dashboard/internal/http/middleware"
	"github.com/acmelabs/invoice-dashboard/internal/metrics"
	"github.com/acmelabs/invoice-dashboard/internal/repository"
	"github.com/acmelabs/invoice-dashboard/internal/service/invoices"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, pgDB, clickhouseDB *sqlx.DB, rds *redis.Client) *Server {
	// repos (Postgres)
	usersRepo := repository.NewUsersRepository(pgDB)
	invoicesRepo := repository.NewInvoicesRepository(pgDB)
	customersRepo := repository.NewCustomersRepository(pgDB)
	dashboardRepo := repository.NewDashboardRepository(pgDB)
	outboxRepo := repository.NewOutboxRepository(pgDB)

	// repos (ClickHouse)
	revenueRepo := repository.NewRevenueRepository(clickhouseDB)

	// services
	invoiceSvc := invoices.New(pgDB, invoicesRepo, outboxRepo)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.APIKeyMiddleware(usersRepo)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		DefaultRPS:     cfg.RateLimit.RPS,
		KeyPrefix:      "rl:user:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", authMW, rlMW)
	v1.GET("/invoices", listInvoicesHandler(invoicesRepo))
	v1.GET("/invoices/pages", invoicePagesHandler(invoicesRepo))
	v1.GET("/invoices/latest", latestInvoicesHandler(invoicesRepo))
	v1.GET("/invoices/:id", getInvoiceHandler(invoicesRepo))
	v1.POST("/invoices", createInvoiceHandler(invoiceSvc))
	v1.PUT("/invoices/:id", updateInvoiceHandler(invoiceSvc))
	v1.DELETE("/invoices/:id", deleteInvoiceHandler(invoiceSvc))

	v1.GET("/customers", listCustomersHandler(customersRepo))
	v1.GET("/customers/table", customerTableHandler(customersRepo))

	v1.GET("/dashboard/cards", cardTotalsHandler(dashboardRepo))
	v1.GET("/dashboard/revenue", revenueHandler(revenueRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
