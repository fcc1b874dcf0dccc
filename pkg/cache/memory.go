package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local cache. It is safe for concurrent use.
// Expired entries are dropped when read.
type Memory struct {
	DefaultKeyer

	// TTL applies when Set is called with a zero TTL.
	TTL time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns the entry for key, or nil when absent or expired.
func (c *Memory) Get(ctx context.Context, key string) (*Entry, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if c.clock().After(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, nil
	}
	out := e.entry
	out.Body = append([]byte(nil), e.entry.Body...)
	return &out, nil
}

// Set stores a copy of body under key.
func (c *Memory) Set(ctx context.Context, key string, body []byte, ttl time.Duration, contentType string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]memoryEntry)
	}
	c.entries[key] = memoryEntry{
		entry:     Entry{ContentType: contentType, Body: append([]byte(nil), body...)},
		expiresAt: c.clock().Add(ttlOrDefault(ttl, c.TTL)),
	}
	return nil
}

// Delete removes key.
func (c *Memory) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Clear removes every entry and returns how many there were.
func (c *Memory) Clear(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]memoryEntry)
	return n, nil
}

// Len returns the number of stored entries, including expired ones not
// yet read.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Memory) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

var (
	_ Cache   = (*Memory)(nil)
	_ Deleter = (*Memory)(nil)
	_ Clearer = (*Memory)(nil)
)
