package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"harvest-direct/internal/domain"
)

type stubInventorySvc struct {
	check         *domain.StockCheck
	product       *domain.Product
	lowStock      []domain.LowStockProduct
	err           error
	lastThreshold int
	lastID        int64
	lastQty       int
}

func (s *stubInventorySvc) ValidateStock(_ context.Context, productID int64, quantity int) (*domain.StockCheck, error) {
	s.lastID, s.lastQty = productID, quantity
	return s.check, s.err
}

func (s *stubInventorySvc) SetStock(_ context.Context, productID int64, quantity int) (*domain.Product, error) {
	s.lastID, s.lastQty = productID, quantity
	return s.product, s.err
}

func (s *stubInventorySvc) Decrement(_ context.Context, productID int64, quantity int) (*domain.Product, error) {
	s.lastID, s.lastQty = productID, quantity
	return s.product, s.err
}

func (s *stubInventorySvc) ListLowStock(_ context.Context, threshold int) ([]domain.LowStockProduct, error) {
	s.lastThreshold = threshold
	return s.lowStock, s.err
}

func TestValidateStockEndpoint(t *testing.T) {
	svc := &stubInventorySvc{check: &domain.StockCheck{
		ProductID:         4,
		RequestedQuantity: 2,
		CurrentStock:      9,
		Available:         true,
	}}
	router := testRouter(t, Deps{InventorySvc: svc})

	body := strings.NewReader(`{"productId": 4, "quantity": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/validate-stock", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got domain.StockCheck
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !got.Available || got.CurrentStock != 9 {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestValidateStockUnknownProduct(t *testing.T) {
	svc := &stubInventorySvc{err: domain.ErrNotFound}
	router := testRouter(t, Deps{InventorySvc: svc})

	body := strings.NewReader(`{"productId": 99, "quantity": 1}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/validate-stock", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestSetStockEndpoint(t *testing.T) {
	svc := &stubInventorySvc{product: &domain.Product{ID: 4, StockQuantity: 30}}
	router := testRouter(t, Deps{InventorySvc: svc})

	body := strings.NewReader(`{"stockQuantity": 30}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/products/4/stock", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastID != 4 || svc.lastQty != 30 {
		t.Fatalf("expected SetStock(4, 30), got (%d, %d)", svc.lastID, svc.lastQty)
	}
}

func TestSetStockNegativeValue(t *testing.T) {
	svc := &stubInventorySvc{err: fmt.Errorf("%w: stock quantity must not be negative", domain.ErrInvalidRequest)}
	router := testRouter(t, Deps{InventorySvc: svc})

	body := strings.NewReader(`{"stockQuantity": -1}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/products/4/stock", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSetStockMissingBody(t *testing.T) {
	svc := &stubInventorySvc{}
	router := testRouter(t, Deps{InventorySvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/admin/products/4/stock", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDecrementStockEndpoint(t *testing.T) {
	svc := &stubInventorySvc{product: &domain.Product{ID: 4, StockQuantity: 8}}
	router := testRouter(t, Deps{InventorySvc: svc})

	body := strings.NewReader(`{"quantity": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/products/4/decrement", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastID != 4 || svc.lastQty != 2 {
		t.Fatalf("expected Decrement(4, 2), got (%d, %d)", svc.lastID, svc.lastQty)
	}
}

func TestDecrementStockInsufficient(t *testing.T) {
	svc := &stubInventorySvc{err: domain.ErrInsufficientStock}
	router := testRouter(t, Deps{InventorySvc: svc})

	body := strings.NewReader(`{"quantity": 100}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/products/4/decrement", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestLowStockEndpoint(t *testing.T) {
	svc := &stubInventorySvc{lowStock: []domain.LowStockProduct{
		{ProductID: 2, Name: "Sourdough Loaf", StockQuantity: 3},
	}}
	router := testRouter(t, Deps{InventorySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/admin/low-stock?threshold=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastThreshold != 5 {
		t.Fatalf("expected threshold 5, got %d", svc.lastThreshold)
	}

	var got struct {
		LowStockProducts []domain.LowStockProduct `json:"lowStockProducts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.LowStockProducts) != 1 || got.LowStockProducts[0].ProductID != 2 {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestLowStockDefaultThreshold(t *testing.T) {
	svc := &stubInventorySvc{}
	router := testRouter(t, Deps{InventorySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/admin/low-stock", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastThreshold != 10 {
		t.Fatalf("expected default threshold 10, got %d", svc.lastThreshold)
	}
}

func TestLowStockBadThreshold(t *testing.T) {
	svc := &stubInventorySvc{}
	router := testRouter(t, Deps{InventorySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/admin/low-stock?threshold=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
