package service

import (
	"context"
	"sync"
	"time"

	"github.com/ejoh/storefront-backend/internal/app/model"
	"github.com/ejoh/storefront-backend/internal/kvstore"
	"github.com/ejoh/storefront-backend/pkg/logger"
)

// WishlistService owns the set of saved product copies, keyed by product
// id. Add is idempotent and Remove is a no-op for absent entries; both
// write the whole collection through before committing.
type WishlistService interface {
	Load(ctx context.Context) error
	Add(ctx context.Context, product model.Product) error
	Remove(ctx context.Context, productID int) error
	List() []model.WishlistEntry
	Count() int
	Contains(productID int) bool
}

type wishlistService struct {
	mu      sync.Mutex
	entries []model.WishlistEntry
	store   kvstore.Store
	now     func() time.Time
}

func NewWishlistService(store kvstore.Store) WishlistService {
	return &wishlistService{
		store: store,
		now:   time.Now,
	}
}

func (s *wishlistService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []model.WishlistEntry
	found, err := loadJSON(ctx, s.store, kvstore.KeyWishlist, &entries)
	if err != nil {
		logger.Error("Failed to load wishlist state", err, nil)
		return err
	}
	if found {
		s.entries = entries
	}

	logger.Info("Wishlist state loaded", map[string]interface{}{
		"entries": len(s.entries),
	})
	return nil
}

func (s *wishlistService) Add(ctx context.Context, product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.ID == product.ID {
			logger.Debug("Product already in wishlist", map[string]interface{}{
				"product_id": product.ID,
			})
			return nil
		}
	}

	next := append(s.cloneEntries(), model.WishlistEntry{
		Product: product.Clone(),
		AddedAt: s.now().UTC(),
	})
	if err := persistJSON(ctx, s.store, kvstore.KeyWishlist, next); err != nil {
		logger.Error("Failed to persist wishlist", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	s.entries = next

	logger.Info("Product added to wishlist", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *wishlistService) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.WishlistEntry, 0, len(s.entries))
	removed := false
	for _, entry := range s.entries {
		if entry.ID == productID {
			removed = true
			continue
		}
		next = append(next, entry)
	}
	if !removed {
		return nil
	}

	if err := persistJSON(ctx, s.store, kvstore.KeyWishlist, next); err != nil {
		logger.Error("Failed to persist wishlist", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	s.entries = next

	logger.Info("Product removed from wishlist", map[string]interface{}{
		"product_id": productID,
	})
	return nil
}

func (s *wishlistService) List() []model.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneEntries()
}

func (s *wishlistService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *wishlistService) Contains(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.ID == productID {
			return true
		}
	}
	return false
}

func (s *wishlistService) cloneEntries() []model.WishlistEntry {
	entries := make([]model.WishlistEntry, len(s.entries))
	for i, entry := range s.entries {
		entries[i] = entry
		entries[i].Product = entry.Product.Clone()
	}
	return entries
}
