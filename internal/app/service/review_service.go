package service

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ejoh/storefront-backend/internal/app/model"
	"github.com/ejoh/storefront-backend/internal/kvstore"
	"github.com/ejoh/storefront-backend/pkg/logger"
)

// ReviewService owns per-product review sequences in insertion order.
// Review ids are creation-time derived and strictly monotonic within the
// service. The product id is not validated against the catalog, and the
// catalog's informational review count is never reconciled with this store.
type ReviewService interface {
	Load(ctx context.Context) error
	Add(ctx context.Context, productID int, author string, rating int, comment string) (model.Review, error)
	ListForProduct(productID int) []model.Review
	AverageRating(productID int) float64
	Delete(ctx context.Context, productID int, reviewID int64) error
}

type reviewService struct {
	mu      sync.Mutex
	reviews map[int][]model.Review
	lastID  int64
	store   kvstore.Store
	policy  *bluemonday.Policy
	now     func() time.Time
}

func NewReviewService(store kvstore.Store) ReviewService {
	return &reviewService{
		reviews: make(map[int][]model.Review),
		store:   store,
		policy:  bluemonday.StrictPolicy(),
		now:     time.Now,
	}
}

func (s *reviewService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reviews map[int][]model.Review
	found, err := loadJSON(ctx, s.store, kvstore.KeyReviews, &reviews)
	if err != nil {
		logger.Error("Failed to load review state", err, nil)
		return err
	}
	if found && reviews != nil {
		s.reviews = reviews
		for _, list := range reviews {
			for _, r := range list {
				if r.ID > s.lastID {
					s.lastID = r.ID
				}
			}
		}
	}

	logger.Info("Review state loaded", map[string]interface{}{
		"products": len(s.reviews),
	})
	return nil
}

// Add appends a review to the product's sequence, creating it if absent.
// Author and comment are stripped of any markup before they are stored.
func (s *reviewService) Add(ctx context.Context, productID int, author string, rating int, comment string) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	review := model.Review{
		ID:        id,
		ProductID: productID,
		Author:    s.policy.Sanitize(author),
		Rating:    rating,
		Comment:   s.policy.Sanitize(comment),
		Date:      s.now().UTC(),
	}

	next := s.cloneReviews()
	next[productID] = append(next[productID], review)

	if err := persistJSON(ctx, s.store, kvstore.KeyReviews, next); err != nil {
		logger.Error("Failed to persist reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		return model.Review{}, err
	}
	s.reviews = next
	s.lastID = id

	logger.Info("Review added", map[string]interface{}{
		"product_id": productID,
		"review_id":  id,
		"rating":     rating,
	})
	return review, nil
}

// ListForProduct returns the product's reviews in insertion order, never
// nil: a product without reviews yields an empty slice.
func (s *reviewService) ListForProduct(productID int) []model.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.reviews[productID]
	out := make([]model.Review, len(list))
	copy(out, list)
	return out
}

// AverageRating is the arithmetic mean of the product's review ratings,
// rounded to one decimal place. Zero reviews yield 0; callers distinguish
// that from a genuine 0.0 average by checking ListForProduct's length.
func (s *reviewService) AverageRating(productID int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.reviews[productID]
	if len(list) == 0 {
		return 0
	}

	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(list))
	return math.Round(mean*10) / 10
}

// Delete removes the one matching review; absent product or review id is a
// no-op.
func (s *reviewService) Delete(ctx context.Context, productID int, reviewID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.reviews[productID]
	if !ok {
		return nil
	}

	filtered := make([]model.Review, 0, len(list))
	removed := false
	for _, r := range list {
		if r.ID == reviewID {
			removed = true
			continue
		}
		filtered = append(filtered, r)
	}
	if !removed {
		return nil
	}

	next := s.cloneReviews()
	next[productID] = filtered

	if err := persistJSON(ctx, s.store, kvstore.KeyReviews, next); err != nil {
		logger.Error("Failed to persist reviews", err, map[string]interface{}{
			"product_id": productID,
			"review_id":  reviewID,
		})
		return err
	}
	s.reviews = next

	logger.Info("Review deleted", map[string]interface{}{
		"product_id": productID,
		"review_id":  reviewID,
	})
	return nil
}

func (s *reviewService) cloneReviews() map[int][]model.Review {
	next := make(map[int][]model.Review, len(s.reviews))
	for productID, list := range s.reviews {
		copied := make([]model.Review, len(list))
		copy(copied, list)
		next[productID] = copied
	}
	return next
}
