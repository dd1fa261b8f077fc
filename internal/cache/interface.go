package cache

import (
	"context"
	"time"
)

// Cache stores JSON encoded values under logical keys. Implementations
// report a miss as (false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const ProductKeyPrefix = "product"

func Key(prefix string, id string) string {
	return prefix + ":" + id
}
