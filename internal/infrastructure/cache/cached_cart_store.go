package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/basket"
)

// CachedCartStore decorates a durable CartStore with a cache-aside layer.
// Reads are served from cache when possible; writes go to the durable
// store first and then refresh the cache. Cache failures never fail the
// operation, the durable store remains the source of truth.
type CachedCartStore struct {
	inner  basket.CartStore
	cache  CartCache
	ttl    time.Duration
	logger *zap.Logger
}

// CachedCartStoreOption is a functional option for CachedCartStore
type CachedCartStoreOption func(*CachedCartStore)

// WithCachedCartTTL sets the TTL used when populating the cache
func WithCachedCartTTL(ttl time.Duration) CachedCartStoreOption {
	return func(s *CachedCartStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewCachedCartStore creates a cache-aside decorator around a durable cart store
func NewCachedCartStore(inner basket.CartStore, cartCache CartCache, logger *zap.Logger, opts ...CachedCartStoreOption) *CachedCartStore {
	s := &CachedCartStore{
		inner:  inner,
		cache:  cartCache,
		ttl:    DefaultCartTTL,
		logger: logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the cart from cache when present, falling back to the
// durable store and repopulating the cache on a miss.
func (s *CachedCartStore) Get(ctx context.Context, username string) (*basket.ShoppingCart, error) {
	cached, err := s.cache.Get(ctx, username)
	if err != nil {
		s.logger.Warn("cart cache read failed, falling back to store",
			zap.String("username", username),
			zap.Error(err),
		)
	}
	if cached != nil {
		return cached, nil
	}

	cart, err := s.inner.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cart, s.ttl); err != nil {
		s.logger.Warn("failed to populate cart cache",
			zap.String("username", username),
			zap.Error(err),
		)
	}

	return cart, nil
}

// Store writes the cart to the durable store, then refreshes the cache
func (s *CachedCartStore) Store(ctx context.Context, cart *basket.ShoppingCart) (*basket.ShoppingCart, error) {
	stored, err := s.inner.Store(ctx, cart)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, stored, s.ttl); err != nil {
		s.logger.Warn("failed to refresh cart cache",
			zap.String("username", stored.Username),
			zap.Error(err),
		)
	}

	return stored, nil
}

// Delete removes the cart from the durable store, then invalidates the cache
func (s *CachedCartStore) Delete(ctx context.Context, username string) error {
	if err := s.inner.Delete(ctx, username); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, username); err != nil {
		s.logger.Warn("failed to invalidate cart cache",
			zap.String("username", username),
			zap.Error(err),
		)
	}

	return nil
}

// Ensure CachedCartStore implements CartStore
var _ basket.CartStore = (*CachedCartStore)(nil)
