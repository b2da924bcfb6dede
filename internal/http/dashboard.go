package http

import (
	"net/http"

	echo "github.com/labstack/echo/v4"

	"github.com/acmelabs/invoice-dashboard/internal/repository"
)

func cardTotalsHandler(repo repository.DashboardRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		totals, err := repo.CardTotals(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("card totals failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch card data"})
		}

		return c.JSON(http.StatusOK, totals)
	}
}

func revenueHandler(repo repository.RevenueRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		points, err := repo.List(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("revenue failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch revenue data"})
		}

		return c.JSON(http.StatusOK, map[string]any{"results": points})
	}
}
