package omeda

import (
	"context"
	"net/http"
	"time"

	"github.com/parameter1/omeda-go/pkg/cache"
	"github.com/parameter1/omeda-go/pkg/errors"
)

// Cache key operations.
const (
	OperationBrand  = "brand"
	OperationClient = "client"
)

// GetParams describes a GET call.
type GetParams struct {
	Endpoint        string
	ErrorOnNotFound *bool // nil means true
	UseClientURL    bool

	// NoCache skips the cache for this call, both read and write.
	NoCache bool

	// TTL is passed to the cache and is part of the cache key. Zero
	// selects the cache's default.
	TTL time.Duration
}

// PostParams describes a POST call.
type PostParams struct {
	Endpoint     string
	Body         any
	BodyType     ContentType // defaults to JSON
	InputID      string      // overrides Config.InputID
	UseClientURL bool
}

// Get performs a GET request, served from the cache when one is
// configured and holds the key. A miss performs the request and then
// writes the body to the cache exactly once before returning. Cache
// failures are returned as CACHE errors.
func (c *Client) Get(ctx context.Context, p GetParams) (Response, error) {
	req := RequestParams{
		Method:          http.MethodGet,
		Endpoint:        p.Endpoint,
		ErrorOnNotFound: p.ErrorOnNotFound,
		UseClientURL:    p.UseClientURL,
	}
	if c.cache == nil || p.NoCache {
		return c.Request(ctx, req)
	}
	if err := errors.ValidateEndpoint(p.Endpoint); err != nil {
		return nil, err
	}
	// A client-scoped GET without a client abbreviation must fail before
	// it can be answered from a shared cache.
	if _, err := c.url(p.Endpoint, p.UseClientURL); err != nil {
		return nil, err
	}

	start := time.Now()
	op := OperationBrand
	if p.UseClientURL {
		op = OperationClient
	}
	key := c.CacheKey(op, p.Endpoint, p.TTL)

	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		c.hooks.OnCacheError(ctx, op, err)
		return nil, cacheError(err, "read %s", key)
	}
	if entry != nil {
		c.hooks.OnCacheHit(ctx, op)
		c.log.Debug("cache hit", "key", key, "endpoint", CleanPath(p.Endpoint))
		return responseFromEntry(ContentType(entry.ContentType), entry.Body, time.Since(start))
	}
	c.hooks.OnCacheMiss(ctx, op)
	c.log.Debug("cache miss", "key", key, "endpoint", CleanPath(p.Endpoint))

	resp, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, resp.Raw(), p.TTL, string(resp.ContentType())); err != nil {
		c.hooks.OnCacheError(ctx, op, err)
		return nil, cacheError(err, "write %s", key)
	}
	c.hooks.OnCacheSet(ctx, op, len(resp.Raw()))
	c.log.Debug("cache set", "key", key, "bytes", len(resp.Raw()), "ttl", p.TTL)
	return resp, nil
}

// Post performs a POST request. POST responses are never cached.
func (c *Client) Post(ctx context.Context, p PostParams) (Response, error) {
	return c.Request(ctx, RequestParams{
		Method:       http.MethodPost,
		Endpoint:     p.Endpoint,
		Body:         p.Body,
		BodyType:     p.BodyType,
		InputID:      p.InputID,
		UseClientURL: p.UseClientURL,
	})
}

// CacheKey returns the key Get uses for an endpoint. Client-scoped keys
// include the client abbreviation. It panics when no cache is configured.
func (c *Client) CacheKey(operation, endpoint string, ttl time.Duration) string {
	p := cache.KeyParams{
		Environment: c.Environment(),
		Brand:       c.brand,
		Operation:   operation,
		Endpoint:    CleanPath(endpoint),
		TTL:         ttl,
	}
	if operation == OperationClient {
		p.Client = c.clientAbbrev
	}
	return c.cache.BuildKey(p)
}

// cacheError wraps a cache failure unless the cache already coded it.
func cacheError(err error, format string, args ...any) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeCache, err, format, args...)
}
