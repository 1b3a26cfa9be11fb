package cache

import (
	"context"
	"time"
)

// Cache is the contract for the read-through cache layer.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found=false on a cache miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
