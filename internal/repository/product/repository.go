package product

import (
	"context"

	"harvest-direct/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	SetStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]domain.LowStockProduct, error)
}
