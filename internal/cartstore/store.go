package cartstore

import "context"

// Line is one stored cart entry. Order within the slice is insertion
// order and is preserved by all implementations.
type Line struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Store maps a session token to its cart lines. A missing token reads as
// an empty slice, never an error. Implementations apply their own TTL so
// abandoned carts do not accumulate forever.
type Store interface {
	Get(ctx context.Context, token string) ([]Line, error)
	Put(ctx context.Context, token string, lines []Line) error
	Delete(ctx context.Context, token string) error
}
