package featureflag

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/featureflag"
)

// StaticFlags evaluates feature flags from a fixed map, typically loaded
// from configuration at startup. Unknown keys evaluate to false.
type StaticFlags struct {
	mu     sync.RWMutex
	flags  map[string]bool
	logger *zap.Logger
}

// NewStaticFlags creates a flag evaluator over the given key/value map
func NewStaticFlags(flags map[string]bool, logger *zap.Logger) *StaticFlags {
	copied := make(map[string]bool, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return &StaticFlags{
		flags:  copied,
		logger: logger,
	}
}

// IsEnabled returns the configured value for the key, false for unknown keys
func (f *StaticFlags) IsEnabled(ctx context.Context, key string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	enabled, known := f.flags[key]
	if !known {
		f.logger.Debug("unknown feature flag evaluated as disabled", zap.String("key", key))
		return false, nil
	}
	return enabled, nil
}

// Set updates a flag at runtime
func (f *StaticFlags) Set(key string, enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags[key] = enabled
}

// Ensure StaticFlags implements Flags
var _ featureflag.Flags = (*StaticFlags)(nil)
