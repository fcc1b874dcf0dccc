package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache with a key prefix for multi-tenant isolation.
// Services that proxy several Omeda accounts through one backend give each
// account its own scope so identical endpoints never share entries.
//
// Example usage:
//
//	// Per-client keys on a shared Redis
//	shared := cache.NewRedis(cache.RedisConfig{Client: rdb})
//	acme := cache.NewScoped(shared, "client:acme:")
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a cache whose built keys carry prefix.
// A nil inner cache is replaced with a Null cache.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNull()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// BuildKey returns the inner cache's key with the scope prefix.
func (s *Scoped) BuildKey(p KeyParams) string {
	return s.prefix + s.inner.BuildKey(p)
}

// Get delegates to the inner cache.
func (s *Scoped) Get(ctx context.Context, key string) (*Entry, error) {
	return s.inner.Get(ctx, key)
}

// Set delegates to the inner cache.
func (s *Scoped) Set(ctx context.Context, key string, body []byte, ttl time.Duration, contentType string) error {
	return s.inner.Set(ctx, key, body, ttl, contentType)
}

// Unwrap returns the inner cache.
func (s *Scoped) Unwrap() Cache { return s.inner }

var _ Cache = (*Scoped)(nil)
