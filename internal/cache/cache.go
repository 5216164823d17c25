// Package cache memoizes derived dashboard views.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-serializable values under string keys
type Cache interface {
	// Get decodes the value stored at key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Invalidate removes every key starting with prefix and bumps its generation.
	Invalidate(ctx context.Context, prefix string) error
	// Generation returns the number of times prefix has been invalidated.
	// Readers put it in their keys so a value computed before an Invalidate
	// is never served after it.
	Generation(ctx context.Context, prefix string) (int64, error)
}
