package inventory

import (
	"context"
	"errors"
	"testing"

	"harvest-direct/internal/domain"
)

type stubRepo struct {
	product      *domain.Product
	getErr       error
	setProduct   *domain.Product
	setErr       error
	setCalls     int
	lastSetID    int64
	lastSetQty   int
	decProduct   *domain.Product
	decErr       error
	lastDecID    int64
	lastDecQty   int
	lowStock     []domain.LowStockProduct
	lowStockErr  error
	lastLowStock int
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Product, error) {
	return s.product, s.getErr
}

func (s *stubRepo) SetStock(_ context.Context, id int64, quantity int) (*domain.Product, error) {
	s.setCalls++
	s.lastSetID = id
	s.lastSetQty = quantity
	return s.setProduct, s.setErr
}

func (s *stubRepo) DecrementStock(_ context.Context, id int64, quantity int) (*domain.Product, error) {
	s.lastDecID = id
	s.lastDecQty = quantity
	return s.decProduct, s.decErr
}

func (s *stubRepo) ListLowStock(_ context.Context, threshold int) ([]domain.LowStockProduct, error) {
	s.lastLowStock = threshold
	return s.lowStock, s.lowStockErr
}

func TestValidateStockAvailable(t *testing.T) {
	svc := New(&stubRepo{product: &domain.Product{ID: 7, StockQuantity: 10}})

	check, err := svc.ValidateStock(context.Background(), 7, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.Available || check.CurrentStock != 10 || check.RequestedQuantity != 10 || check.ProductID != 7 {
		t.Fatalf("unexpected check %+v", check)
	}
}

func TestValidateStockUnavailable(t *testing.T) {
	svc := New(&stubRepo{product: &domain.Product{ID: 7, StockQuantity: 3}})

	check, err := svc.ValidateStock(context.Background(), 7, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Available {
		t.Fatalf("expected unavailable, got %+v", check)
	}
}

func TestValidateStockZeroAlwaysAvailable(t *testing.T) {
	svc := New(&stubRepo{product: &domain.Product{ID: 7, StockQuantity: 0}})

	check, err := svc.ValidateStock(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.Available {
		t.Fatalf("requesting zero units must always be available")
	}
}

func TestValidateStockErrors(t *testing.T) {
	svc := New(&stubRepo{getErr: domain.ErrNotFound})

	if _, err := svc.ValidateStock(context.Background(), 7, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.ValidateStock(context.Background(), 7, -1); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for negative quantity, got %v", err)
	}
}

func TestSetStockNegativeRejectedBeforeRepo(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	_, err := svc.SetStock(context.Background(), 7, -1)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if repo.setCalls != 0 {
		t.Fatalf("repo must not be touched on invalid input")
	}
}

func TestSetStockHappyPath(t *testing.T) {
	updated := &domain.Product{ID: 7, StockQuantity: 25}
	repo := &stubRepo{setProduct: updated}
	svc := New(repo)

	got, err := svc.SetStock(context.Background(), 7, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updated {
		t.Fatalf("unexpected product %+v", got)
	}
	if repo.lastSetID != 7 || repo.lastSetQty != 25 {
		t.Fatalf("SetStock called with id=%d qty=%d", repo.lastSetID, repo.lastSetQty)
	}
}

func TestDecrementValidation(t *testing.T) {
	svc := New(&stubRepo{})

	if _, err := svc.Decrement(context.Background(), 7, 0); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for quantity 0, got %v", err)
	}
}

func TestDecrementInsufficientStock(t *testing.T) {
	repo := &stubRepo{decErr: domain.ErrInsufficientStock}
	svc := New(repo)

	_, err := svc.Decrement(context.Background(), 7, 5)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if repo.lastDecID != 7 || repo.lastDecQty != 5 {
		t.Fatalf("DecrementStock called with id=%d qty=%d", repo.lastDecID, repo.lastDecQty)
	}
}

func TestListLowStock(t *testing.T) {
	rows := []domain.LowStockProduct{
		{ProductID: 2, Name: "Sourdough Loaf", StockQuantity: 3},
		{ProductID: 1, Name: "Rainbow Chard", StockQuantity: 5},
	}
	repo := &stubRepo{lowStock: rows}
	svc := New(repo)

	got, err := svc.ListLowStock(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || repo.lastLowStock != 10 {
		t.Fatalf("unexpected result %+v threshold=%d", got, repo.lastLowStock)
	}

	if _, err := svc.ListLowStock(context.Background(), -1); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for negative threshold, got %v", err)
	}
}
