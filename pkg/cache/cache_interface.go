package cache

import (
	"context"
	"time"
)

// Cache is the contract the repositories cache through. Values are
// stored as JSON, so dest passed to Get must be a pointer.
type Cache interface {
	// Get reports found=false on a miss and leaves dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob such as "content:list:*".
	DeletePattern(ctx context.Context, pattern string) error

	// Increment and Expire back the failed admin login counter.
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error

	Ping(ctx context.Context) error
}
