package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartLineItem_MatchesKey(t *testing.T) {
	item := CartLineItem{
		Product:       Product{ID: 1},
		Quantity:      2,
		SelectedColor: "Black",
		SelectedSize:  "M",
	}

	assert.True(t, item.MatchesKey(1, "Black", "M"))
	assert.False(t, item.MatchesKey(1, "Black", "L"))
	assert.False(t, item.MatchesKey(1, "", ""))
	assert.False(t, item.MatchesKey(2, "Black", "M"))
}

func TestSummarizeOrder(t *testing.T) {
	// 50.00 subtotal: 8% tax, flat shipping
	summary := SummarizeOrder(5000)
	assert.Equal(t, int64(5000), summary.SubtotalCents)
	assert.Equal(t, int64(400), summary.TaxCents)
	assert.Equal(t, int64(1000), summary.ShippingCents)
	assert.Equal(t, int64(6400), summary.GrandTotalCents)
}

func TestSummarizeOrder_FreeShippingOverThreshold(t *testing.T) {
	// Exactly 100.00 still pays shipping; a cent more does not
	atThreshold := SummarizeOrder(10000)
	assert.Equal(t, int64(1000), atThreshold.ShippingCents)

	overThreshold := SummarizeOrder(10001)
	assert.Equal(t, int64(0), overThreshold.ShippingCents)
	assert.Equal(t, int64(10001+800), overThreshold.GrandTotalCents)
}

func TestSummarizeOrder_TaxRoundsToNearestCent(t *testing.T) {
	// 8% of 1.19 is 9.52 cents, rounded to 10
	summary := SummarizeOrder(119)
	assert.Equal(t, int64(10), summary.TaxCents)
}
