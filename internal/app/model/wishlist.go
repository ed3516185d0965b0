package model

import "time"

// WishlistEntry is a stored copy of a product. Entries are keyed by
// product id; the wishlist never holds two entries for the same product.
type WishlistEntry struct {
	Product
	AddedAt time.Time `json:"added_at"`
}
