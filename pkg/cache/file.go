package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache implements a file-based cache for CLI usage.
// Cache entries are stored as files in a directory with metadata (expiration).
type FileCache struct {
	DefaultKeyer

	// TTL applies when Set is called with a zero TTL.
	TTL time.Duration

	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, wrapErr(err, "mkdir", dir)
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry wraps a cached response with its expiration.
type fileEntry struct {
	ContentType string    `json:"contentType"`
	Body        string    `json:"body"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) (*Entry, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "read", key)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Invalid cache entry - treat as miss
		_ = os.Remove(path)
		return nil, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, nil
	}

	return &Entry{ContentType: entry.ContentType, Body: []byte(entry.Body)}, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration, contentType string) error {
	entry := fileEntry{
		ContentType: contentType,
		Body:        string(body),
		ExpiresAt:   time.Now().Add(ttlOrDefault(ttl, c.TTL)),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return wrapErr(err, "encode", key)
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return wrapErr(err, "mkdir", key)
	}

	// Write then rename so concurrent readers never see a partial entry.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return wrapErr(err, "write", key)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return wrapErr(err, "write", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return wrapErr(err, "write", key)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return wrapErr(err, "write", key)
	}
	return nil
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return wrapErr(err, "delete", key)
}

// Clear removes every entry file and the subdirectories that held them.
// It returns the number of entries removed.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return 0, nil
	}

	count := 0
	err := filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == c.dir || info.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		if err := os.Remove(path); err == nil {
			count++
		}
		return nil
	})
	if err != nil {
		return count, wrapErr(err, "clear", c.dir)
	}

	// Clean up empty subdirectories
	entries, _ := os.ReadDir(c.dir)
	for _, e := range entries {
		if e.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return count, nil
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".json"
	return filepath.Join(c.dir, subdir, filename)
}

var (
	_ Cache   = (*FileCache)(nil)
	_ Deleter = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)
