package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/shopfloor/internal/sales"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
)

type stubSalesService struct {
	recorded sales.RecordSaleInput
	listed   sales.ListSalesInput
	err      error
}

func (s *stubSalesService) RecordSale(ctx context.Context, input sales.RecordSaleInput) (*sales.SaleDTO, error) {
	s.recorded = input
	if s.err != nil {
		return nil, s.err
	}
	return &sales.SaleDTO{ID: uuid.New(), Name: input.Name, Quantity: input.Quantity}, nil
}

func (s *stubSalesService) ListSales(ctx context.Context, input sales.ListSalesInput) (*sales.SalesReport, error) {
	s.listed = input
	if s.err != nil {
		return nil, s.err
	}
	return &sales.SalesReport{Sales: []sales.SaleDTO{}}, nil
}

const saleBody = `{"name":"Ana","phone":"555","address":"1 Main St","type":"T-Shirt","color":"Black","size":"M","quantity":5}`

func TestSalesRecord(t *testing.T) {
	svc := &stubSalesService{}
	rec := httptest.NewRecorder()

	SalesRecord(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(saleBody)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.recorded.Quantity != 5 || svc.recorded.Type != "T-Shirt" {
		t.Fatalf("unexpected input %+v", svc.recorded)
	}
}

func TestSalesRecordInsufficientStock(t *testing.T) {
	svc := &stubSalesService{err: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock")}
	rec := httptest.NewRecorder()

	SalesRecord(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(saleBody)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != string(pkgerrors.CodeConflict) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestSalesRecordZeroQuantity(t *testing.T) {
	svc := &stubSalesService{}
	body := strings.Replace(saleBody, `"quantity":5`, `"quantity":0`, 1)
	rec := httptest.NewRecorder()

	SalesRecord(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestSalesListParsesFilters(t *testing.T) {
	svc := &stubSalesService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales?name=%20ana%20&from=2026-03-01&to=2026-03-02&limit=10&cursor=abc", nil)
	rec := httptest.NewRecorder()

	SalesList(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	in := svc.listed
	if in.Name != "ana" {
		t.Fatalf("expected trimmed name, got %q", in.Name)
	}
	if in.From == nil || !in.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %v", in.From)
	}
	if in.To == nil || !in.To.After(time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("expected inclusive end of day, got %v", in.To)
	}
	if in.Pagination.Limit != 10 || in.Pagination.Cursor != "abc" {
		t.Fatalf("unexpected pagination %+v", in.Pagination)
	}
}

func TestSalesListInvalidDate(t *testing.T) {
	rec := httptest.NewRecorder()
	SalesList(&stubSalesService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sales?from=yesterday", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
