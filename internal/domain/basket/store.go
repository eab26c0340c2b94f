package basket

import "context"

// CartStore is the storage capability for shopping carts.
// The durable store and the cache-aside decorator both implement it, so
// callers are wired against the capability, not a concrete backend.
type CartStore interface {
	// Get returns the cart for the username, or shared.ErrNotFound
	Get(ctx context.Context, username string) (*ShoppingCart, error)
	// Store saves the cart as a complete document
	Store(ctx context.Context, cart *ShoppingCart) (*ShoppingCart, error)
	// Delete removes the cart for the username
	Delete(ctx context.Context, username string) error
}
