package domain

import "time"

type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Unit          string    `json:"unit,omitempty"`
	PriceCents    int64     `json:"priceCents"`
	StockQuantity int       `json:"stockQuantity"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"createdAt"`
}
