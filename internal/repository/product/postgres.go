package product

import (
	"context"
	"errors"
	"io"
	"log"

	"harvest-direct/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, COALESCE(description, ''), category, COALESCE(unit, ''), price_cents, stock_quantity, featured, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	return r.queryProducts(ctx, q)
}

func (r *postgresRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE category = $1
ORDER BY created_at DESC
`
	return r.queryProducts(ctx, q, category)
}

func (r *postgresRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE featured
ORDER BY created_at DESC
`
	return r.queryProducts(ctx, q)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	if err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.PriceCents, &p.StockQuantity, &p.Featured, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, category, unit, price_cents, stock_quantity, featured)
VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6, $7)
ON CONFLICT (name, category) DO UPDATE SET
    description = EXCLUDED.description,
    unit = EXCLUDED.unit,
    price_cents = EXCLUDED.price_cents,
    stock_quantity = EXCLUDED.stock_quantity,
    featured = EXCLUDED.featured
RETURNING ` + productColumns + `
`
	var p domain.Product
	if err := r.pool.QueryRow(ctx, q,
		product.Name, product.Description, product.Category, product.Unit,
		product.PriceCents, product.StockQuantity, product.Featured,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.PriceCents, &p.StockQuantity, &p.Featured, &p.CreatedAt,
	); err != nil {
		r.logger.Printf("product repo: upsert name=%q error=%v", product.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted name=%q id=%d", p.Name, p.ID)
	return &p, nil
}

func (r *postgresRepo) SetStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	const q = `
UPDATE products
SET stock_quantity = $2
WHERE id = $1
RETURNING ` + productColumns + `
`
	var p domain.Product
	if err := r.pool.QueryRow(ctx, q, id, quantity).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.PriceCents, &p.StockQuantity, &p.Featured, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: set stock id=%d error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("product repo: set stock id=%d quantity=%d", id, quantity)
	return &p, nil
}

// DecrementStock takes quantity off the counter only when enough is
// available, in one statement, so concurrent sales cannot oversell.
func (r *postgresRepo) DecrementStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	const q = `
UPDATE products
SET stock_quantity = stock_quantity - $2
WHERE id = $1 AND stock_quantity >= $2
RETURNING ` + productColumns + `
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id, quantity).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.PriceCents, &p.StockQuantity, &p.Featured, &p.CreatedAt,
	)
	if err == nil {
		r.logger.Printf("product repo: decrement stock id=%d quantity=%d remaining=%d", id, quantity, p.StockQuantity)
		return &p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("product repo: decrement stock id=%d error=%v", id, err)
		return nil, err
	}

	// No row matched: either the product is missing or the guard failed.
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrInsufficientStock
}

func (r *postgresRepo) ListLowStock(ctx context.Context, threshold int) ([]domain.LowStockProduct, error) {
	const q = `
SELECT id, name, stock_quantity
FROM products
WHERE stock_quantity <= $1
ORDER BY stock_quantity ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q, threshold)
	if err != nil {
		r.logger.Printf("product repo: low stock threshold=%d error=%v", threshold, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.LowStockProduct
	for rows.Next() {
		var p domain.LowStockProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.StockQuantity); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Category, &p.Unit,
			&p.PriceCents, &p.StockQuantity, &p.Featured, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
