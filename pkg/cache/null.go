package cache

import (
	"context"
	"time"
)

// Null is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type Null struct {
	DefaultKeyer
}

// NewNull creates a null cache.
func NewNull() *Null {
	return &Null{}
}

// Get always returns a cache miss.
func (c *Null) Get(ctx context.Context, key string) (*Entry, error) {
	return nil, nil
}

// Set does nothing.
func (c *Null) Set(ctx context.Context, key string, body []byte, ttl time.Duration, contentType string) error {
	return nil
}

// Ensure Null implements Cache.
var _ Cache = (*Null)(nil)
