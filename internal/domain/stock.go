package domain

// StockCheck answers "can requestedQuantity units be fulfilled right now".
// Computed per call, never persisted.
type StockCheck struct {
	ProductID         int64 `json:"productId"`
	RequestedQuantity int   `json:"requestedQuantity"`
	CurrentStock      int   `json:"currentStock"`
	Available         bool  `json:"available"`
}

type LowStockProduct struct {
	ProductID     int64  `json:"productId"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stockQuantity"`
}
