package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/basket"
)

// DefaultCartTTL is how long a cached cart lives without being refreshed
const DefaultCartTTL = 30 * time.Minute

// CartCache is the read-through cache for shopping carts.
// A nil cart with a nil error means a cache miss.
type CartCache interface {
	Get(ctx context.Context, username string) (*basket.ShoppingCart, error)
	Set(ctx context.Context, cart *basket.ShoppingCart, ttl time.Duration) error
	Delete(ctx context.Context, username string) error
}

// RedisCartCache implements CartCache using Redis.
// Carts are stored as JSON documents keyed by username.
type RedisCartCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisCartCacheOption is a functional option for configuring the cache
type RedisCartCacheOption func(*RedisCartCache)

// WithCartTTL sets the default TTL for cached carts
func WithCartTTL(ttl time.Duration) RedisCartCacheOption {
	return func(c *RedisCartCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCartCacheLogger sets the logger for the cache
func WithCartCacheLogger(logger *zap.Logger) RedisCartCacheOption {
	return func(c *RedisCartCache) {
		c.logger = logger
	}
}

// NewRedisCartCache creates a new Redis-backed cart cache
func NewRedisCartCache(cfg RedisConfig, opts ...RedisCartCacheOption) (*RedisCartCache, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	cache := &RedisCartCache{
		client:     client,
		ownsClient: true,
		ttl:        DefaultCartTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisCartCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisCartCacheWithClient(client *redis.Client, opts ...RedisCartCacheOption) *RedisCartCache {
	cache := &RedisCartCache{
		client:     client,
		ownsClient: false,
		ttl:        DefaultCartTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisCartCache) cartKey(username string) string {
	return "basket:cart:" + username
}

// Get retrieves a cart from cache. A miss returns (nil, nil).
func (c *RedisCartCache) Get(ctx context.Context, username string) (*basket.ShoppingCart, error) {
	key := c.cartKey(username)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("cache miss for cart", zap.String("username", username))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart from cache: %w", err)
	}

	var cart basket.ShoppingCart
	if err := json.Unmarshal(data, &cart); err != nil {
		// Corrupted entries are dropped so the caller falls back to the
		// durable store.
		_ = c.client.Del(ctx, key)
		c.logger.Warn("dropped corrupted cart cache entry",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, nil
	}

	c.logger.Debug("cache hit for cart", zap.String("username", username))
	return &cart, nil
}

// Set stores a cart in cache with the given TTL (0 uses the default)
func (c *RedisCartCache) Set(ctx context.Context, cart *basket.ShoppingCart, ttl time.Duration) error {
	if cart == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := c.client.Set(ctx, c.cartKey(cart.Username), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cart in cache: %w", err)
	}

	return nil
}

// Delete removes a cart from cache
func (c *RedisCartCache) Delete(ctx context.Context, username string) error {
	if err := c.client.Del(ctx, c.cartKey(username)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart from cache: %w", err)
	}
	return nil
}

// Close releases the Redis client if this cache owns it
func (c *RedisCartCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisCartCache implements CartCache
var _ CartCache = (*RedisCartCache)(nil)
