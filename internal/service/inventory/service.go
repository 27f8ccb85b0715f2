package inventory

import (
	"context"
	"fmt"

	"harvest-direct/internal/domain"
)

type stockRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	SetStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]domain.LowStockProduct, error)
}

// Service is the only component permitted to mutate stock_quantity. It
// deliberately knows nothing about carts: stock is checked or adjusted at
// order placement and by admin edits, never reserved on add-to-cart.
type Service struct {
	repo stockRepo
}

func New(repo stockRepo) *Service {
	return &Service{repo: repo}
}

// ValidateStock is a pure read: available iff the current counter covers
// the requested quantity. Zero is always fulfillable.
func (s *Service) ValidateStock(ctx context.Context, productID int64, quantity int) (*domain.StockCheck, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidRequest)
	}
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &domain.StockCheck{
		ProductID:         productID,
		RequestedQuantity: quantity,
		CurrentStock:      product.StockQuantity,
		Available:         product.StockQuantity >= quantity,
	}, nil
}

// SetStock overwrites the counter. Last writer wins; concurrent admin
// edits to the same product are not version-checked.
func (s *Service) SetStock(ctx context.Context, productID int64, quantity int) (*domain.Product, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity must not be negative", domain.ErrInvalidRequest)
	}
	return s.repo.SetStock(ctx, productID, quantity)
}

// Decrement atomically takes quantity off the counter, failing with
// domain.ErrInsufficientStock when not enough is available. The counter is
// untouched on failure.
func (s *Service) Decrement(ctx context.Context, productID int64, quantity int) (*domain.Product, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidRequest)
	}
	return s.repo.DecrementStock(ctx, productID, quantity)
}

// ListLowStock returns products at or below threshold, most urgent first.
func (s *Service) ListLowStock(ctx context.Context, threshold int) ([]domain.LowStockProduct, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must not be negative", domain.ErrInvalidRequest)
	}
	return s.repo.ListLowStock(ctx, threshold)
}
