package redis

import (
	"context"
	"time"

	"together/internal/domain"
)

// DefaultReferenceTTL applies when NewReferenceCache is given a non-positive ttl.
const DefaultReferenceTTL = time.Hour

const referenceKeyPrefix = "ref:"

type referenceCache struct {
	client *Client
	ttl    time.Duration
}

// NewReferenceCache stores reference lists as JSON under ref:<key>.
func NewReferenceCache(client *Client, ttl time.Duration) domain.ReferenceCache {
	if ttl <= 0 {
		ttl = DefaultReferenceTTL
	}
	return &referenceCache{client: client, ttl: ttl}
}

func (c *referenceCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return c.client.Get(ctx, referenceKeyPrefix+key, dest)
}

func (c *referenceCache) Set(ctx context.Context, key string, val any) error {
	return c.client.Set(ctx, referenceKeyPrefix+key, val, c.ttl)
}

// NopReferenceCache is used when no cache is configured. Every Get misses.
type NopReferenceCache struct{}

func (NopReferenceCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopReferenceCache) Set(context.Context, string, any) error         { return nil }
