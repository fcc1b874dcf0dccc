// Package cache provides response caches for the Omeda client.
//
// The client depends only on the [Cache] interface: it asks the cache to
// build a key for a GET, looks the key up, and on a miss stores the
// response body with its content type. Implementations:
//
//   - [Memory]: process-local, for long-running services and tests
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [Redis]: shared cache backed by github.com/redis/go-redis
//   - [Mongo]: shared cache backed by a MongoDB collection with a TTL index
//   - [Null]: never stores anything
//
// [Scoped] wraps any Cache and prefixes its keys, which isolates tenants
// that share a backend.
//
// Cache failures are returned to the caller. The client does not treat a
// broken cache as a miss.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is used by implementations when Set is called with a zero TTL.
const DefaultTTL = time.Hour

// Entry is a cached response.
type Entry struct {
	ContentType string `json:"contentType"` // "json" or "text"
	Body        []byte `json:"body"`
}

// KeyParams identifies a cacheable request.
type KeyParams struct {
	Environment string        // "staging" or "production"
	Brand       string        // brand abbreviation
	Operation   string        // URL scope, "brand" or "client"
	Client      string        // client abbreviation, set for "client" only
	Endpoint    string        // cleaned endpoint path
	TTL         time.Duration // requested TTL; part of the key
}

// Cache is the collaborator contract used by the Omeda client.
type Cache interface {
	// BuildKey returns a deterministic key for p.
	BuildKey(p KeyParams) string

	// Get returns the entry stored under key, or nil on a miss.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set stores body under key. A zero ttl selects the implementation
	// default.
	Set(ctx context.Context, key string, body []byte, ttl time.Duration, contentType string) error
}

// Deleter is implemented by caches that can drop a single key.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

func ttlOrDefault(ttl, def time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	if def > 0 {
		return def
	}
	return DefaultTTL
}
