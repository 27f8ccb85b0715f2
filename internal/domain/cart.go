package domain

// Cart is the read-time view of a session's cart. It is derived on every
// read from the stored line items and current catalog prices; nothing in
// it is persisted.
type Cart struct {
	Items         []CartItem `json:"items"`
	TotalItems    int        `json:"totalItems"`
	SubtotalCents int64      `json:"subtotalCents"`
	ShippingCents int64      `json:"shippingCents"`
	TotalCents    int64      `json:"totalCents"`
}

type CartItem struct {
	Product        Product `json:"product"`
	Quantity       int     `json:"quantity"`
	LineTotalCents int64   `json:"lineTotalCents"`
}
