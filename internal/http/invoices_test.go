package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"

	"github.com/acmelabs/invoice-dashboard/internal/model"
	"github.com/acmelabs/invoice-dashboard/internal/repository"
)

// stubInvoices records the arguments handlers pass down.
type stubInvoices struct {
	lastSearch string
	lastPage   int
	form       *model.InvoiceForm
	err        error
}

func (s *stubInvoices) List(_ context.Context, search string, page int) ([]model.InvoiceView, error) {
	s.lastSearch, s.lastPage = search, page
	return []model.InvoiceView{}, s.err
}

func (s *stubInvoices) CountPages(_ context.Context, search string) (int, error) {
	s.lastSearch = search
	return 3, s.err
}

func (s *stubInvoices) GetByID(_ context.Context, id string) (*model.InvoiceForm, error) {
	if s.form != nil && s.form.ID == id {
		return s.form, nil
	}
	return nil, fmt.Errorf("invoice %s: %w", id, repository.ErrNotFound)
}

func (s *stubInvoices) Latest(context.Context) ([]model.InvoiceView, error) {
	return []model.InvoiceView{}, s.err
}

func (s *stubInvoices) InsertTx(context.Context, *sqlx.Tx, model.Invoice) error { return nil }
func (s *stubInvoices) UpdateTx(context.Context, *sqlx.Tx, model.Invoice) error { return nil }
func (s *stubInvoices) DeleteTx(context.Context, *sqlx.Tx, string) error        { return nil }

func doGet(t *testing.T, h echo.HandlerFunc, target string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestListInvoicesPageParam(t *testing.T) {
	cases := []struct {
		target   string
		wantPage int
	}{
		{"/v1/invoices", 1},
		{"/v1/invoices?page=4", 4},
		{"/v1/invoices?page=0", 1},
		{"/v1/invoices?page=-2", 1},
		{"/v1/invoices?page=abc", 1},
	}
	for _, tc := range cases {
		stub := &stubInvoices{}
		rec := doGet(t, listInvoicesHandler(stub), tc.target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tc.target, rec.Code)
		}
		if stub.lastPage != tc.wantPage {
			t.Errorf("%s: page = %d, want %d", tc.target, stub.lastPage, tc.wantPage)
		}
	}
}

func TestListInvoicesSearchParam(t *testing.T) {
	stub := &stubInvoices{}
	doGet(t, listInvoicesHandler(stub), "/v1/invoices?query=+lee+")
	if stub.lastSearch != "lee" {
		t.Errorf("search = %q, want lee", stub.lastSearch)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	stub := &stubInvoices{}
	rec := doGet(t, getInvoiceHandler(stub), "/v1/invoices/missing", "id", "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetInvoiceReturnsRawAmount(t *testing.T) {
	stub := &stubInvoices{form: &model.InvoiceForm{
		ID: "inv-1", CustomerID: "cust-lee", Amount: 1234, Status: model.StatusPending,
	}}
	rec := doGet(t, getInvoiceHandler(stub), "/v1/invoices/inv-1", "id", "inv-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Amount json.Number `json:"amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Amount.String() != "1234" {
		t.Errorf("amount = %s, want raw cents 1234", body.Amount)
	}
}

func TestInvoicePages(t *testing.T) {
	stub := &stubInvoices{}
	rec := doGet(t, invoicePagesHandler(stub), "/v1/invoices/pages?query=lee")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["pages"] != 3 {
		t.Errorf("pages = %d, want 3", body["pages"])
	}
	if stub.lastSearch != "lee" {
		t.Errorf("search = %q, want lee", stub.lastSearch)
	}
}
