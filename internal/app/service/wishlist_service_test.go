package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejoh/storefront-backend/internal/kvstore"
)

func setupWishlistService(t *testing.T) (WishlistService, kvstore.Store) {
	store := kvstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	wishlist := NewWishlistService(store)
	require.NoError(t, wishlist.Load(context.Background()))
	return wishlist, store
}

func TestWishlistService_Add(t *testing.T) {
	wishlist, _ := setupWishlistService(t)
	ctx := context.Background()

	require.NoError(t, wishlist.Add(ctx, testProduct(1, 1000)))

	assert.Equal(t, 1, wishlist.Count())
	assert.True(t, wishlist.Contains(1))
	assert.False(t, wishlist.Contains(2))
}

func TestWishlistService_Add_Idempotent(t *testing.T) {
	wishlist, _ := setupWishlistService(t)
	ctx := context.Background()

	require.NoError(t, wishlist.Add(ctx, testProduct(1, 1000)))
	require.NoError(t, wishlist.Add(ctx, testProduct(1, 1000)))

	assert.Equal(t, 1, wishlist.Count())
	assert.Len(t, wishlist.List(), 1)
}

func TestWishlistService_Remove(t *testing.T) {
	wishlist, _ := setupWishlistService(t)
	ctx := context.Background()

	require.NoError(t, wishlist.Add(ctx, testProduct(1, 1000)))
	require.NoError(t, wishlist.Add(ctx, testProduct(2, 2500)))

	require.NoError(t, wishlist.Remove(ctx, 1))
	assert.Equal(t, 1, wishlist.Count())
	assert.False(t, wishlist.Contains(1))
	assert.True(t, wishlist.Contains(2))

	// Removing an absent entry is a no-op
	assert.NoError(t, wishlist.Remove(ctx, 42))
	assert.Equal(t, 1, wishlist.Count())
}

func TestWishlistService_RoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	first := NewWishlistService(store)
	require.NoError(t, first.Load(ctx))
	require.NoError(t, first.Add(ctx, testProduct(1, 1000)))
	require.NoError(t, first.Add(ctx, testProduct(2, 2500)))

	second := NewWishlistService(store)
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, first.List(), second.List())
	assert.Equal(t, 2, second.Count())
}
