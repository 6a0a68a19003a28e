package cache

import (
	"context"
	"time"
)

// Cache is the gateway the services are built against. Implementations
// must treat a missing key as (value "", ok false, err nil).
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Invalidate removes a single key, or every key matching a glob
	// pattern when the argument contains a wildcard.
	Invalidate(ctx context.Context, keyOrPattern string) error
}
