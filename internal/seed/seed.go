package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name          string
	Description   string
	Category      string
	Unit          string
	PriceCents    int64
	StockQuantity int
	Featured      bool
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:          "Heirloom Tomatoes",
			Description:   "Vine-ripened heirloom tomatoes, picked this week",
			Category:      "vegetables",
			Unit:          "lb",
			PriceCents:    450,
			StockQuantity: 40,
			Featured:      true,
		},
		{
			Name:          "Rainbow Chard",
			Description:   "Crisp chard bunches from the north field",
			Category:      "vegetables",
			Unit:          "bunch",
			PriceCents:    325,
			StockQuantity: 25,
		},
		{
			Name:          "Raw Wildflower Honey",
			Description:   "Unfiltered honey from our own hives",
			Category:      "pantry",
			Unit:          "jar",
			PriceCents:    1250,
			StockQuantity: 18,
			Featured:      true,
		},
		{
			Name:          "Pasture-Raised Eggs",
			Description:   "One dozen, mixed sizes",
			Category:      "dairy-eggs",
			Unit:          "dozen",
			PriceCents:    925,
			StockQuantity: 30,
		},
		{
			Name:          "Sourdough Loaf",
			Description:   "Naturally leavened, baked Fridays",
			Category:      "bakery",
			Unit:          "loaf",
			PriceCents:    850,
			StockQuantity: 12,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, category, unit, price_cents, stock_quantity, featured)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (name, category) DO UPDATE
SET description = EXCLUDED.description,
    unit = EXCLUDED.unit,
    price_cents = EXCLUDED.price_cents,
    featured = EXCLUDED.featured
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Category, p.Unit, p.PriceCents, p.StockQuantity, p.Featured)
	return err
}
