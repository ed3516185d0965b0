package model

// CartLineItem is a value copy of a product plus the buyer's choice of
// quantity, color and size. An empty color or size means "not selected";
// the merge key (ProductID, SelectedColor, SelectedSize) compares them
// exactly, so two unselected additions still merge.
type CartLineItem struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selected_color,omitempty"`
	SelectedSize  string `json:"selected_size,omitempty"`
}

// MatchesKey reports whether this line item has the given merge key.
func (i CartLineItem) MatchesKey(productID int, color, size string) bool {
	return i.ID == productID && i.SelectedColor == color && i.SelectedSize == size
}

// SubtotalCents is price times quantity for this line item.
func (i CartLineItem) SubtotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}

// CheckoutInfo carries the checkout form fields. Every field is required;
// validation happens in the cart service before the cart is cleared.
type CheckoutInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

const (
	taxRatePercent             = 8
	shippingFlatCents          = 1000
	freeShippingThresholdCents = 10000
)

// OrderSummary is the cart's derived cost breakdown.
type OrderSummary struct {
	SubtotalCents   int64 `json:"subtotal_cents"`
	TaxCents        int64 `json:"tax_cents"`
	ShippingCents   int64 `json:"shipping_cents"`
	GrandTotalCents int64 `json:"grand_total_cents"`
}

// SummarizeOrder derives tax and shipping from the subtotal: 8% tax rounded
// to the nearest cent, flat shipping waived above the free threshold.
func SummarizeOrder(subtotalCents int64) OrderSummary {
	tax := (subtotalCents*taxRatePercent + 50) / 100
	shipping := int64(shippingFlatCents)
	if subtotalCents > freeShippingThresholdCents {
		shipping = 0
	}
	return OrderSummary{
		SubtotalCents:   subtotalCents,
		TaxCents:        tax,
		ShippingCents:   shipping,
		GrandTotalCents: subtotalCents + tax + shipping,
	}
}
