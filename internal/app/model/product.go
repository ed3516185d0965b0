package model

import "fmt"

type ProductCategory string

const (
	CategoryElectronics ProductCategory = "electronics"
	CategoryClothing    ProductCategory = "clothing"
	CategoryAccessories ProductCategory = "accessories"

	// CategoryAll is the universal filter value, not a real category.
	CategoryAll = "all"
)

// Product is an immutable catalog entry. Prices are integer cents to keep
// cart totals exact. Reviews is the informational count shipped with the
// seed data; it is independent of the review store.
type Product struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	PriceCents         int64           `json:"price_cents"`
	OriginalPriceCents int64           `json:"original_price_cents"`
	Category           ProductCategory `json:"category"`
	Image              string          `json:"image"`
	Rating             float64         `json:"rating"`
	Reviews            int             `json:"reviews"`
	InStock            bool            `json:"in_stock"`
	Colors             []string        `json:"colors"`
	Sizes              []string        `json:"sizes"`
}

// Clone returns a value copy with its own color/size slices, so stored
// copies (cart, wishlist) never alias catalog state.
func (p Product) Clone() Product {
	clone := p
	clone.Colors = append([]string(nil), p.Colors...)
	clone.Sizes = append([]string(nil), p.Sizes...)
	return clone
}

// FormatCents renders cents as a 2-decimal amount, e.g. 8999 -> "89.99".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
