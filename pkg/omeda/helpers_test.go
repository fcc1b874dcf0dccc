package omeda

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/parameter1/omeda-go/pkg/buildinfo"
	"github.com/parameter1/omeda-go/pkg/cache"
	"github.com/parameter1/omeda-go/pkg/omedatest"
)

const testBrand = "ACME"

var testBuild = buildinfo.Info{Name: "omeda-go", Version: "v1.0.0", Homepage: "https://example.test"}

func newTestClient(t *testing.T, srv *omedatest.Server, mutate ...func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		AppID:     "app-123",
		Brand:     testBrand,
		BaseURL:   srv.URL,
		BuildInfo: testBuild,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// countingCache counts calls on top of a Memory cache.
type countingCache struct {
	*cache.Memory

	mu   sync.Mutex
	gets int
	sets int
}

func newCountingCache() *countingCache {
	return &countingCache{Memory: cache.NewMemory()}
}

func (c *countingCache) Get(ctx context.Context, key string) (*cache.Entry, error) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.Memory.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration, contentType string) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Memory.Set(ctx, key, body, ttl, contentType)
}

func (c *countingCache) counts() (gets, sets int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets, c.sets
}

// failingCache fails reads or writes.
type failingCache struct {
	cache.DefaultKeyer
	failGet bool
	failSet bool
}

func (c failingCache) Get(context.Context, string) (*cache.Entry, error) {
	if c.failGet {
		return nil, fmt.Errorf("connection reset")
	}
	return nil, nil
}

func (c failingCache) Set(context.Context, string, []byte, time.Duration, string) error {
	if c.failSet {
		return fmt.Errorf("disk full")
	}
	return nil
}

// barrierCache holds every Get until n callers are waiting, so that
// concurrent lookups all observe a miss.
type barrierCache struct {
	*cache.Memory
	wg sync.WaitGroup
}

func newBarrierCache(n int) *barrierCache {
	b := &barrierCache{Memory: cache.NewMemory()}
	b.wg.Add(n)
	return b
}

func (b *barrierCache) Get(ctx context.Context, key string) (*cache.Entry, error) {
	entry, err := b.Memory.Get(ctx, key)
	b.wg.Done()
	b.wg.Wait()
	return entry, err
}

// recordingHooks counts observability events.
type recordingHooks struct {
	mu        sync.Mutex
	requests  int
	responses []int
	errors    int
	hits      int
	misses    int
	sets      int
	cacheErrs int
}

func (h *recordingHooks) OnRequest(context.Context, string, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, status)
}

func (h *recordingHooks) OnError(context.Context, string, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func (h *recordingHooks) OnCacheError(context.Context, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cacheErrs++
}
