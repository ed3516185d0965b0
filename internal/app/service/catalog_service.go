package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ejoh/storefront-backend/internal/app/model"
	"github.com/ejoh/storefront-backend/pkg/logger"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
	ErrInvalidSortKey   = errors.New("invalid sort key")
)

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// CatalogService owns the immutable product set and the current
// search/filter/sort view over it.
type CatalogService interface {
	Load(ctx context.Context) error
	Loaded() bool
	SetSearchTerm(term string)
	SetCategory(category string)
	SetSortKey(key SortKey) error
	View() []model.Product
	All() []model.Product
	GetByID(id int) (model.Product, error)
	Categories() []string
}

type catalogService struct {
	mu         sync.RWMutex
	products   []model.Product
	loaded     bool
	searchTerm string
	category   string
	sortKey    SortKey

	collator  *collate.Collator
	loadDelay time.Duration
}

func NewCatalogService(loadDelay time.Duration) CatalogService {
	return &catalogService{
		category:  model.CategoryAll,
		sortKey:   SortName,
		collator:  collate.New(language.AmericanEnglish),
		loadDelay: loadDelay,
	}
}

// Load populates the catalog from the seed dataset. The artificial delay
// stands in for the network fetch the demo pretends to make; loading twice
// is a no-op.
func (s *catalogService) Load(ctx context.Context) error {
	s.mu.RLock()
	alreadyLoaded := s.loaded
	s.mu.RUnlock()
	if alreadyLoaded {
		return nil
	}

	if err := simulateLatency(ctx, s.loadDelay); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	s.products = model.SeedCatalog()
	s.loaded = true

	logger.Info("Product catalog loaded", map[string]interface{}{
		"count": len(s.products),
	})
	return nil
}

func (s *catalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *catalogService) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

func (s *catalogService) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		category = model.CategoryAll
	}
	s.category = category
}

func (s *catalogService) SetSortKey(key SortKey) error {
	switch key {
	case SortName, SortPriceLow, SortPriceHigh, SortRating:
	case "":
		key = SortName
	default:
		return ErrInvalidSortKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortKey = key
	return nil
}

// View computes the derived product list: case-insensitive substring match
// of the search term against name or description, exact category match (or
// "all"), then a stable sort by the configured key. Ties keep the filtered
// insertion order because filtering happens before sorting.
func (s *catalogService) View() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(s.searchTerm)
	filtered := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
		matchesCategory := s.category == model.CategoryAll || string(p.Category) == s.category
		if matchesSearch && matchesCategory {
			filtered = append(filtered, p.Clone())
		}
	}

	switch s.sortKey {
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PriceCents < filtered[j].PriceCents
		})
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PriceCents > filtered[j].PriceCents
		})
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	default: // SortName, locale-aware ascending
		sort.SliceStable(filtered, func(i, j int) bool {
			return s.collator.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	}

	return filtered
}

func (s *catalogService) All() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.Product, len(s.products))
	for i, p := range s.products {
		all[i] = p.Clone()
	}
	return all
}

func (s *catalogService) GetByID(id int) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return model.Product{}, ErrCatalogNotLoaded
	}
	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}

	logger.Debug("Product not found in catalog", map[string]interface{}{
		"product_id": id,
	})
	return model.Product{}, ErrProductNotFound
}

// Categories returns the distinct category tags of the full catalog,
// deduplicated in first-seen order.
func (s *catalogService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range s.products {
		c := string(p.Category)
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	return categories
}
