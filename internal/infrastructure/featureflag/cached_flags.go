package featureflag

import (
	"context"
	"sync"
	"time"

	"github.com/shopstream/backend/internal/domain/featureflag"
)

// DefaultFlagTTL is how long an evaluated flag value is cached
const DefaultFlagTTL = 30 * time.Second

type cachedValue struct {
	enabled   bool
	expiresAt time.Time
}

func (v cachedValue) isExpired() bool {
	return time.Now().After(v.expiresAt)
}

// CachedFlags decorates a Flags evaluator with a short-lived in-memory
// cache, so hot paths such as the event bridge do not hit the backing
// evaluator on every event.
type CachedFlags struct {
	inner  featureflag.Flags
	ttl    time.Duration
	mu     sync.RWMutex
	values map[string]cachedValue
}

// NewCachedFlags creates a caching decorator with the given TTL (0 uses the default)
func NewCachedFlags(inner featureflag.Flags, ttl time.Duration) *CachedFlags {
	if ttl <= 0 {
		ttl = DefaultFlagTTL
	}
	return &CachedFlags{
		inner:  inner,
		ttl:    ttl,
		values: make(map[string]cachedValue),
	}
}

// IsEnabled returns the cached value when fresh, re-evaluating otherwise.
// Evaluation errors are not cached.
func (f *CachedFlags) IsEnabled(ctx context.Context, key string) (bool, error) {
	f.mu.RLock()
	value, ok := f.values[key]
	f.mu.RUnlock()

	if ok && !value.isExpired() {
		return value.enabled, nil
	}

	enabled, err := f.inner.IsEnabled(ctx, key)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	f.values[key] = cachedValue{
		enabled:   enabled,
		expiresAt: time.Now().Add(f.ttl),
	}
	f.mu.Unlock()

	return enabled, nil
}

// Invalidate drops the cached value for a key
func (f *CachedFlags) Invalidate(key string) {
	f.mu.Lock()
	delete(f.values, key)
	f.mu.Unlock()
}

// Ensure CachedFlags implements Flags
var _ featureflag.Flags = (*CachedFlags)(nil)
