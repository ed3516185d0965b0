package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ejoh/storefront-backend/internal/app/model"
	"github.com/ejoh/storefront-backend/internal/kvstore"
	"github.com/ejoh/storefront-backend/pkg/logger"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartService owns the line items a user intends to purchase. Two additions
// with the same (product id, color, size) merge key sum their quantities;
// any other key gets its own line item. Every mutation writes the whole
// collection through to the key-value store before committing it in memory,
// so a persistence failure leaves the cart at its last persisted state.
type CartService interface {
	Load(ctx context.Context) error
	AddToCart(ctx context.Context, product model.Product, quantity int, color, size string) error
	RemoveFromCart(ctx context.Context, productID int, color, size string) error
	UpdateQuantity(ctx context.Context, productID, quantity int, color, size string) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context, info model.CheckoutInfo) error
	Items() []model.CartLineItem
	TotalCents() int64
	ItemCount() int
}

type cartService struct {
	mu    sync.Mutex
	items []model.CartLineItem
	store kvstore.Store
}

func NewCartService(store kvstore.Store) CartService {
	return &cartService{store: store}
}

// Load rehydrates the cart from the key-value store. A missing key means
// an empty cart.
func (s *cartService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []model.CartLineItem
	found, err := loadJSON(ctx, s.store, kvstore.KeyCart, &items)
	if err != nil {
		logger.Error("Failed to load cart state", err, nil)
		return err
	}
	if found {
		s.items = items
	}

	logger.Info("Cart state loaded", map[string]interface{}{
		"line_items": len(s.items),
	})
	return nil
}

func (s *cartService) AddToCart(ctx context.Context, product model.Product, quantity int, color, size string) error {
	if quantity <= 0 {
		logger.Warn("Rejected cart addition with non-positive quantity", map[string]interface{}{
			"product_id": product.ID,
			"quantity":   quantity,
		})
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cloneItems()
	merged := false
	for i := range next {
		if next[i].MatchesKey(product.ID, color, size) {
			next[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, model.CartLineItem{
			Product:       product.Clone(),
			Quantity:      quantity,
			SelectedColor: color,
			SelectedSize:  size,
		})
	}

	if err := persistJSON(ctx, s.store, kvstore.KeyCart, next); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	s.items = next

	logger.Info("Item added to cart", map[string]interface{}{
		"product_id": product.ID,
		"quantity":   quantity,
		"color":      color,
		"size":       size,
		"merged":     merged,
	})
	return nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, productID int, color, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, productID, color, size)
}

// UpdateQuantity replaces the quantity of the matching line item. A
// quantity of zero or less removes the item instead. An absent key is a
// no-op.
func (s *cartService) UpdateQuantity(ctx context.Context, productID, quantity int, color, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, productID, color, size)
	}

	next := s.cloneItems()
	found := false
	for i := range next {
		if next[i].MatchesKey(productID, color, size) {
			next[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		logger.Warn("Quantity update for absent cart item ignored", map[string]interface{}{
			"product_id": productID,
			"color":      color,
			"size":       size,
		})
		return nil
	}

	if err := persistJSON(ctx, s.store, kvstore.KeyCart, next); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	s.items = next

	logger.Info("Cart item quantity updated", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

func (s *cartService) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// Checkout validates the checkout form and clears the cart on success.
// Payment is not processed; this is the demo's order completion.
func (s *cartService) Checkout(ctx context.Context, info model.CheckoutInfo) error {
	if err := requireFields(map[string]string{
		"first_name":  info.FirstName,
		"last_name":   info.LastName,
		"email":       info.Email,
		"phone":       info.Phone,
		"address":     info.Address,
		"city":        info.City,
		"state":       info.State,
		"zip_code":    info.ZipCode,
		"card_number": info.CardNumber,
		"card_name":   info.CardName,
		"expiry_date": info.ExpiryDate,
		"cvv":         info.CVV,
	}); err != nil {
		logger.Warn("Checkout rejected: incomplete form", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	totalCents := totalOf(s.items)
	if err := s.clearLocked(ctx); err != nil {
		return err
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"email": info.Email,
		"total": model.FormatCents(totalCents),
	})
	return nil
}

func (s *cartService) Items() []model.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneItems()
}

// TotalCents recomputes the cart total on every call; nothing is cached.
func (s *cartService) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.items)
}

// ItemCount sums quantities across line items.
func (s *cartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *cartService) removeLocked(ctx context.Context, productID int, color, size string) error {
	next := make([]model.CartLineItem, 0, len(s.items))
	removed := false
	for _, item := range s.items {
		if item.MatchesKey(productID, color, size) {
			removed = true
			continue
		}
		next = append(next, item)
	}
	if !removed {
		return nil
	}

	if err := persistJSON(ctx, s.store, kvstore.KeyCart, next); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	s.items = next

	logger.Info("Item removed from cart", map[string]interface{}{
		"product_id": productID,
		"color":      color,
		"size":       size,
	})
	return nil
}

func (s *cartService) clearLocked(ctx context.Context) error {
	empty := []model.CartLineItem{}
	if err := persistJSON(ctx, s.store, kvstore.KeyCart, empty); err != nil {
		logger.Error("Failed to persist cleared cart", err, nil)
		return err
	}
	s.items = empty

	logger.Info("Cart cleared", nil)
	return nil
}

func (s *cartService) cloneItems() []model.CartLineItem {
	items := make([]model.CartLineItem, len(s.items))
	for i, item := range s.items {
		items[i] = item
		items[i].Product = item.Product.Clone()
	}
	return items
}

func totalOf(items []model.CartLineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.SubtotalCents()
	}
	return total
}
