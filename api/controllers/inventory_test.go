package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfloor/internal/inventory"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
)

type stubInventoryService struct {
	items     []inventory.ItemDTO
	created   inventory.ItemInput
	updatedID uuid.UUID
	deletedID uuid.UUID
	selection inventory.Selection
	err       error
}

func (s *stubInventoryService) List(ctx context.Context) ([]inventory.ItemDTO, error) {
	return s.items, s.err
}

func (s *stubInventoryService) Get(ctx context.Context, id uuid.UUID) (*inventory.ItemDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, item := range s.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
}

func (s *stubInventoryService) Create(ctx context.Context, input inventory.ItemInput) (*inventory.ItemDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &inventory.ItemDTO{ID: uuid.New(), Type: input.Type, Color: input.Color, Size: input.Size, Quantity: input.Quantity, Price: input.Price}, nil
}

func (s *stubInventoryService) Update(ctx context.Context, id uuid.UUID, input inventory.ItemInput) (*inventory.ItemDTO, error) {
	s.updatedID = id
	if s.err != nil {
		return nil, s.err
	}
	return &inventory.ItemDTO{ID: id, Type: input.Type, Quantity: input.Quantity}, nil
}

func (s *stubInventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

func (s *stubInventoryService) SeedSamples(ctx context.Context) (int, error) {
	return 0, nil
}

func (s *stubInventoryService) Options(ctx context.Context, sel inventory.Selection) (*inventory.Options, error) {
	s.selection = sel
	return &inventory.Options{Types: []string{"T-Shirt"}, Colors: []string{}, Sizes: []string{}, Selection: sel}, s.err
}

func TestInventoryCreate(t *testing.T) {
	svc := &stubInventoryService{}
	body := `{"type":"T-Shirt","color":"Black","size":"M","quantity":25,"price":"19.99"}`
	rec := httptest.NewRecorder()

	InventoryCreate(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/inventory", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.created.Price.Equal(decimal.RequireFromString("19.99")) || svc.created.Quantity != 25 {
		t.Fatalf("unexpected input %+v", svc.created)
	}
}

func TestInventoryCreateRejectsUnknownField(t *testing.T) {
	body := `{"type":"T-Shirt","color":"Black","size":"M","quantity":1,"price":"1","sku":"x"}`
	rec := httptest.NewRecorder()

	InventoryCreate(&stubInventoryService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/inventory", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryGetNotFound(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/inventory/x", nil), "itemId", uuid.NewString())
	rec := httptest.NewRecorder()

	InventoryGet(&stubInventoryService{}, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestInventoryGetInvalidID(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/inventory/abc", nil), "itemId", "abc")
	rec := httptest.NewRecorder()

	InventoryGet(&stubInventoryService{}, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryUpdateAndDelete(t *testing.T) {
	svc := &stubInventoryService{}
	id := uuid.New()

	body := `{"type":"Hoodie","color":"Grey","size":"L","quantity":3,"price":"45"}`
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/v1/inventory/"+id.String(), strings.NewReader(body)), "itemId", id.String())
	rec := httptest.NewRecorder()
	InventoryUpdate(svc, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || svc.updatedID != id {
		t.Fatalf("update: status %d id %s", rec.Code, svc.updatedID)
	}

	req = withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/inventory/"+id.String(), nil), "itemId", id.String())
	rec = httptest.NewRecorder()
	InventoryDelete(svc, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || svc.deletedID != id {
		t.Fatalf("delete: status %d id %s", rec.Code, svc.deletedID)
	}
}

func TestSaleOptionsReadsSelection(t *testing.T) {
	svc := &stubInventoryService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/options?type=T-Shirt&color=%20Black%20", nil)
	rec := httptest.NewRecorder()

	SaleOptions(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.selection.Type != "T-Shirt" || svc.selection.Color != "Black" || svc.selection.Size != "" {
		t.Fatalf("unexpected selection %+v", svc.selection)
	}
}
