package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejoh/storefront-backend/internal/kvstore"
)

func setupReviewService(t *testing.T) (ReviewService, kvstore.Store) {
	store := kvstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	reviews := NewReviewService(store)
	require.NoError(t, reviews.Load(context.Background()))
	return reviews, store
}

func TestReviewService_Add(t *testing.T) {
	reviews, _ := setupReviewService(t)
	ctx := context.Background()

	review, err := reviews.Add(ctx, 1, "Alice", 5, "Great headphones")
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Equal(t, 1, review.ProductID)
	assert.Equal(t, 5, review.Rating)
	assert.False(t, review.Date.IsZero())

	list := reviews.ListForProduct(1)
	require.Len(t, list, 1)
	assert.Equal(t, review, list[0])
}

func TestReviewService_Add_IDsAreMonotonic(t *testing.T) {
	reviews, _ := setupReviewService(t)
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 5; i++ {
		review, err := reviews.Add(ctx, 1, "Alice", 4, "fine")
		require.NoError(t, err)
		assert.Greater(t, review.ID, lastID)
		lastID = review.ID
	}
}

func TestReviewService_Add_SanitizesMarkup(t *testing.T) {
	reviews, _ := setupReviewService(t)
	ctx := context.Background()

	review, err := reviews.Add(ctx, 1, "Alice", 5, `nice <script>alert("x")</script>product`)
	require.NoError(t, err)
	assert.NotContains(t, review.Comment, "<script>")
	assert.Contains(t, review.Comment, "nice")
	assert.Contains(t, review.Comment, "product")
}

func TestReviewService_ListForProduct_EmptyNeverNil(t *testing.T) {
	reviews, _ := setupReviewService(t)

	list := reviews.ListForProduct(99)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestReviewService_AverageRating(t *testing.T) {
	reviews, _ := setupReviewService(t)
	ctx := context.Background()

	assert.Equal(t, float64(0), reviews.AverageRating(1))

	for _, rating := range []int{5, 3, 4} {
		_, err := reviews.Add(ctx, 1, "Alice", rating, "ok")
		require.NoError(t, err)
	}
	assert.Equal(t, 4.0, reviews.AverageRating(1))
}

func TestReviewService_AverageRating_RoundsToOneDecimal(t *testing.T) {
	reviews, _ := setupReviewService(t)
	ctx := context.Background()

	// (5+4+4)/3 = 4.333... -> 4.3
	for _, rating := range []int{5, 4, 4} {
		_, err := reviews.Add(ctx, 2, "Bob", rating, "ok")
		require.NoError(t, err)
	}
	assert.Equal(t, 4.3, reviews.AverageRating(2))
}

func TestReviewService_Delete(t *testing.T) {
	reviews, _ := setupReviewService(t)
	ctx := context.Background()

	first, err := reviews.Add(ctx, 1, "Alice", 5, "first")
	require.NoError(t, err)
	second, err := reviews.Add(ctx, 1, "Bob", 3, "second")
	require.NoError(t, err)

	require.NoError(t, reviews.Delete(ctx, 1, first.ID))

	list := reviews.ListForProduct(1)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	// Absent product or review id is a no-op
	assert.NoError(t, reviews.Delete(ctx, 1, 424242))
	assert.NoError(t, reviews.Delete(ctx, 99, first.ID))
	assert.Len(t, reviews.ListForProduct(1), 1)
}

func TestReviewService_RoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	first := NewReviewService(store)
	require.NoError(t, first.Load(ctx))
	_, err := first.Add(ctx, 1, "Alice", 5, "great")
	require.NoError(t, err)
	_, err = first.Add(ctx, 2, "Bob", 3, "meh")
	require.NoError(t, err)

	second := NewReviewService(store)
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, first.ListForProduct(1), second.ListForProduct(1))
	assert.Equal(t, first.ListForProduct(2), second.ListForProduct(2))
	assert.Equal(t, first.AverageRating(1), second.AverageRating(1))

	// New ids keep climbing past the rehydrated ones
	newReview, err := second.Add(ctx, 1, "Carol", 4, "fine")
	require.NoError(t, err)
	assert.Greater(t, newReview.ID, second.ListForProduct(2)[0].ID)
}
