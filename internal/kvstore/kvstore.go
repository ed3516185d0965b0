package kvstore

import (
	"context"
	"errors"
)

// Store is the durable string-to-string store the state services write
// through to. Get reports absence with the bool instead of an error;
// Set and Delete failures surface to the caller and are never retried.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Fixed keys, one per state service. Each service owns its key exclusively,
// so no multi-key transaction is ever needed.
const (
	KeyCart     = "storefront:cart"
	KeyWishlist = "storefront:wishlist"
	KeyReviews  = "storefront:reviews"
	KeySession  = "storefront:session"
)

// ModelKeys lists every key a service persists under, in a stable order.
// Used by the snapshot scheduler.
var ModelKeys = []string{KeyCart, KeyWishlist, KeyReviews, KeySession}

var ErrClosed = errors.New("kvstore: store is closed")
