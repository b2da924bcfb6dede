package http

import (
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"

	"github.com/acmelabs/invoice-dashboard/internal/repository"
)

func listCustomersHandler(repo repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := repo.List(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("list customers failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch all customers"})
		}

		return c.JSON(http.StatusOK, map[string]any{"results": rows})
	}
}

func customerTableHandler(repo repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		search := strings.TrimSpace(c.QueryParam("query"))

		rows, err := repo.ListWithTotals(c.Request().Context(), search)
		if err != nil {
			c.Logger().Errorf("customer table failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch customer table"})
		}

		return c.JSON(http.StatusOK, map[string]any{"results": rows})
	}
}
