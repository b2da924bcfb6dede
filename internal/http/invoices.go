package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/acmelabs/invoice-dashboard/internal/repository"
	"github.com/acmelabs/invoice-dashboard/internal/service/invoices"
)

// pageParam parses the 1-based page number; anything missing, unparsable or
// below 1 defaults to page 1.
func pageParam(c echo.Context) int {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page = n
		}
	}
	return page
}

func listInvoicesHandler(repo repository.InvoicesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		search := strings.TrimSpace(c.QueryParam("query"))
		page := pageParam(c)

		rows, err := repo.List(c.Request().Context(), search, page)
		if err != nil {
			c.Logger().Errorf("list invoices failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch invoices"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"page":    page,
			"count":   len(rows),
			"results": rows,
		})
	}
}

func invoicePagesHandler(repo repository.InvoicesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		search := strings.TrimSpace(c.QueryParam("query"))

		pages, err := repo.CountPages(c.Request().Context(), search)
		if err != nil {
			c.Logger().Errorf("count invoice pages failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch total number of invoices"})
		}

		return c.JSON(http.StatusOK, map[string]int{"pages": pages})
	}
}

func latestInvoicesHandler(repo repository.InvoicesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := repo.Latest(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("latest invoices failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch the latest invoices"})
		}

		return c.JSON(http.StatusOK, map[string]any{"results": rows})
	}
}

func getInvoiceHandler(repo repository.InvoicesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		form, err := repo.GetByID(c.Request().Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "invoice not found"})
		}
		if err != nil {
			c.Logger().Errorf("get invoice failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch invoice"})
		}

		return c.JSON(http.StatusOK, form)
	}
}

func createInvoiceHandler(svc *invoices.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form invoices.Form
		if err := c.Bind(&form); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		id, err := svc.Create(c.Request().Context(), form)
		if err != nil {
			var verr *invoices.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, map[string]any{
					"error":  "validation failed",
					"fields": verr.Fields,
				})
			}

			log.Errorf("create invoice failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create invoice"})
		}

		return c.JSON(http.StatusCreated, map[string]string{"id": id})
	}
}

func updateInvoiceHandler(svc *invoices.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		var form invoices.Form
		if err := c.Bind(&form); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		err := svc.Update(c.Request().Context(), id, form)
		if err != nil {
			var verr *invoices.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, map[string]any{
					"error":  "validation failed",
					"fields": verr.Fields,
				})
			}
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "invoice not found"})
			}

			log.Errorf("update invoice failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update invoice"})
		}

		return c.JSON(http.StatusOK, map[string]string{"id": id})
	}
}

func deleteInvoiceHandler(svc *invoices.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		err := svc.Delete(c.Request().Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "invoice not found"})
		}
		if err != nil {
			log.Errorf("delete invoice failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete invoice"})
		}

		return c.NoContent(http.StatusNoContent)
	}
}
