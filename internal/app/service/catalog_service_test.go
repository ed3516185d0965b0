package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejoh/storefront-backend/internal/app/model"
)

func setupCatalog(t *testing.T) CatalogService {
	catalog := NewCatalogService(0)
	require.NoError(t, catalog.Load(context.Background()))
	return catalog
}

func TestCatalogService_Load(t *testing.T) {
	catalog := NewCatalogService(0)
	assert.False(t, catalog.Loaded())

	require.NoError(t, catalog.Load(context.Background()))
	assert.True(t, catalog.Loaded())
	assert.Len(t, catalog.All(), 8)

	// Loading again is a no-op
	require.NoError(t, catalog.Load(context.Background()))
	assert.Len(t, catalog.All(), 8)
}

func TestCatalogService_ViewSearch(t *testing.T) {
	catalog := setupCatalog(t)

	catalog.SetSearchTerm("watch")
	catalog.SetCategory(model.CategoryAll)
	require.NoError(t, catalog.SetSortKey(SortPriceLow))

	view := catalog.View()
	require.Len(t, view, 1)
	assert.Equal(t, "Smart Fitness Watch", view[0].Name)
}

func TestCatalogService_ViewSearchMatchesDescription(t *testing.T) {
	catalog := setupCatalog(t)

	// "noise cancellation" appears only in the headphones description
	catalog.SetSearchTerm("noise cancellation")

	view := catalog.View()
	require.Len(t, view, 1)
	assert.Equal(t, 1, view[0].ID)
}

func TestCatalogService_ViewSearchIsCaseInsensitive(t *testing.T) {
	catalog := setupCatalog(t)

	catalog.SetSearchTerm("WIRELESS")

	view := catalog.View()
	require.Len(t, view, 2)
	for _, p := range view {
		assert.Contains(t, p.Name, "Wireless")
	}
}

func TestCatalogService_ViewCategoryFilter(t *testing.T) {
	catalog := setupCatalog(t)

	catalog.SetCategory("clothing")

	view := catalog.View()
	require.Len(t, view, 2)
	// Default sort is name ascending
	assert.Equal(t, "Denim Jacket", view[0].Name)
	assert.Equal(t, "Organic Cotton T-Shirt", view[1].Name)

	// Changing the sort key reorders without changing membership
	require.NoError(t, catalog.SetSortKey(SortRating))
	view = catalog.View()
	require.Len(t, view, 2)
	assert.Equal(t, "Organic Cotton T-Shirt", view[0].Name) // 4.7
	assert.Equal(t, "Denim Jacket", view[1].Name)           // 4.6
}

func TestCatalogService_ViewSortByPrice(t *testing.T) {
	catalog := setupCatalog(t)

	require.NoError(t, catalog.SetSortKey(SortPriceLow))
	view := catalog.View()
	require.Len(t, view, 8)
	for i := 1; i < len(view); i++ {
		assert.LessOrEqual(t, view[i-1].PriceCents, view[i].PriceCents)
	}

	require.NoError(t, catalog.SetSortKey(SortPriceHigh))
	view = catalog.View()
	for i := 1; i < len(view); i++ {
		assert.GreaterOrEqual(t, view[i-1].PriceCents, view[i].PriceCents)
	}
}

func TestCatalogService_ViewStableSortOnTies(t *testing.T) {
	catalog := setupCatalog(t)

	// Headphones (id 1) and Denim Jacket (id 6) share price 8999; the
	// filtered insertion order (catalog order) must survive the sort.
	require.NoError(t, catalog.SetSortKey(SortPriceLow))
	view := catalog.View()

	var tied []int
	for _, p := range view {
		if p.PriceCents == 8999 {
			tied = append(tied, p.ID)
		}
	}
	assert.Equal(t, []int{1, 6}, tied)
}

func TestCatalogService_SetSortKeyInvalid(t *testing.T) {
	catalog := setupCatalog(t)

	assert.ErrorIs(t, catalog.SetSortKey("newest"), ErrInvalidSortKey)
}

func TestCatalogService_GetByID(t *testing.T) {
	catalog := setupCatalog(t)

	product, err := catalog.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Smart Fitness Watch", product.Name)

	_, err = catalog.GetByID(999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_GetByID_NotLoaded(t *testing.T) {
	catalog := NewCatalogService(0)

	_, err := catalog.GetByID(1)
	assert.ErrorIs(t, err, ErrCatalogNotLoaded)
}

func TestCatalogService_Categories(t *testing.T) {
	catalog := setupCatalog(t)

	categories := catalog.Categories()
	assert.ElementsMatch(t, []string{"electronics", "clothing", "accessories"}, categories)
}

func TestCatalogService_ViewReturnsCopies(t *testing.T) {
	catalog := setupCatalog(t)

	view := catalog.View()
	require.NotEmpty(t, view)
	view[0].Name = "mutated"
	view[0].Colors[0] = "mutated"

	fresh, err := catalog.GetByID(view[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", fresh.Name)
	assert.NotEqual(t, "mutated", fresh.Colors[0])
}
