package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"harvest-direct/internal/cartstore"
	"harvest-direct/internal/domain"
)

type catalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service owns the session-token-keyed cart lines. Prices and totals are
// derived from the catalog on every read and never stored, so a price
// change is visible on the next GET without touching any cart.
type Service struct {
	store            cartstore.Store
	catalog          catalog
	shippingFeeCents int64

	mu    sync.Mutex
	locks map[string]*tokenLock
}

type tokenLock struct {
	mu   sync.Mutex
	refs int
}

func New(store cartstore.Store, catalog catalog, shippingFeeCents int64) *Service {
	return &Service{
		store:            store,
		catalog:          catalog,
		shippingFeeCents: shippingFeeCents,
		locks:            make(map[string]*tokenLock),
	}
}

// Get returns the cart view for token. A never-seen token reads as an
// empty cart. Lines whose product has vanished from the catalog are
// dropped from the view and pruned from storage; one stale line must not
// block checkout for the rest.
func (s *Service) Get(ctx context.Context, token string) (*domain.Cart, error) {
	unlock := s.lockToken(token)
	defer unlock()

	lines, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, token, lines)
}

// AddItem merges quantity into an existing line for the product or
// appends a new line at the end.
func (s *Service) AddItem(ctx context.Context, token string, productID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidRequest)
	}
	if _, err := s.catalog.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	unlock := s.lockToken(token)
	defer unlock()

	lines, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, cartstore.Line{ProductID: productID, Quantity: quantity})
	}

	if err := s.store.Put(ctx, token, lines); err != nil {
		return nil, err
	}
	return s.buildView(ctx, token, lines)
}

// UpdateItemQuantity replaces a line's quantity in place. Quantity below 1
// removes the line; a product id not in the cart is a no-op rather than an
// error, so duplicate or late client requests stay harmless.
func (s *Service) UpdateItemQuantity(ctx context.Context, token string, productID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, token, productID)
	}

	unlock := s.lockToken(token)
	defer unlock()

	lines, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			if err := s.store.Put(ctx, token, lines); err != nil {
				return nil, err
			}
			break
		}
	}
	return s.buildView(ctx, token, lines)
}

// RemoveItem deletes the line for productID if present; no-op otherwise.
func (s *Service) RemoveItem(ctx context.Context, token string, productID int64) (*domain.Cart, error) {
	unlock := s.lockToken(token)
	defer unlock()

	lines, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if removed {
		if err := s.store.Put(ctx, token, kept); err != nil {
			return nil, err
		}
	}
	return s.buildView(ctx, token, kept)
}

// buildView enriches stored lines with current catalog data. Caller holds
// the token lock.
func (s *Service) buildView(ctx context.Context, token string, lines []cartstore.Line) (*domain.Cart, error) {
	items := make([]domain.CartItem, 0, len(lines))
	surviving := make([]cartstore.Line, 0, len(lines))
	pruned := false

	for _, line := range lines {
		product, err := s.catalog.GetByID(ctx, line.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			pruned = true
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, domain.CartItem{
			Product:        *product,
			Quantity:       line.Quantity,
			LineTotalCents: product.PriceCents * int64(line.Quantity),
		})
		surviving = append(surviving, line)
	}

	if pruned {
		if err := s.store.Put(ctx, token, surviving); err != nil {
			return nil, err
		}
	}

	cart := &domain.Cart{Items: items}
	for _, item := range items {
		cart.TotalItems += item.Quantity
		cart.SubtotalCents += item.LineTotalCents
	}
	if len(items) > 0 {
		cart.ShippingCents = s.shippingFeeCents
	}
	cart.TotalCents = cart.SubtotalCents + cart.ShippingCents
	return cart, nil
}

// lockToken serializes operations per token. Carts for different tokens
// never contend on the same lock, and locks are reference-counted so the
// map does not grow with every token ever seen.
func (s *Service) lockToken(token string) func() {
	s.mu.Lock()
	lock, ok := s.locks[token]
	if !ok {
		lock = &tokenLock{}
		s.locks[token] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, token)
		}
		s.mu.Unlock()
	}
}
