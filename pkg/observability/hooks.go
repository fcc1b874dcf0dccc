// Package observability provides hooks for metrics and tracing of Omeda
// API traffic.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends to the client. The
// client receives a [Hooks] value in its configuration and calls it around
// every network exchange and cache lookup.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide a no-op default implementation
//   - Let the application pass its implementation to the client
//
// Hooks are passed explicitly rather than registered globally, so two
// clients in one process can report to different backends.
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	client, err := omeda.New(omeda.Config{
//	    AppID: appID,
//	    Brand: "ACME",
//	    Hooks: observability.NewPrometheusHooks(reg),
//	})
package observability

import (
	"context"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations. operation is the URL
// scope of the cached request ("brand" for GETs).
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, operation string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, operation string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, operation string, size int)

	// OnCacheError records a failed cache read or write.
	OnCacheError(ctx context.Context, operation string, err error)
}

// Hooks is everything the client reports.
type Hooks interface {
	HTTPHooks
	CacheHooks
}

// =============================================================================
// No-op Implementation
// =============================================================================

// Noop is a no-op implementation of Hooks.
type Noop struct{}

func (Noop) OnRequest(context.Context, string, string, string)                      {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (Noop) OnError(context.Context, string, string, string, error)                 {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnCacheError(context.Context, string, error)                            {}

// OrNoop returns h, or Noop when h is nil.
func OrNoop(h Hooks) Hooks {
	if h == nil {
		return Noop{}
	}
	return h
}

// =============================================================================
// Fan-out
// =============================================================================

// Multi calls each of its hooks in order.
type Multi []Hooks

func (m Multi) OnRequest(ctx context.Context, method, host, path string) {
	for _, h := range m {
		h.OnRequest(ctx, method, host, path)
	}
}

func (m Multi) OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration) {
	for _, h := range m {
		h.OnResponse(ctx, method, host, path, statusCode, duration)
	}
}

func (m Multi) OnError(ctx context.Context, method, host, path string, err error) {
	for _, h := range m {
		h.OnError(ctx, method, host, path, err)
	}
}

func (m Multi) OnCacheHit(ctx context.Context, operation string) {
	for _, h := range m {
		h.OnCacheHit(ctx, operation)
	}
}

func (m Multi) OnCacheMiss(ctx context.Context, operation string) {
	for _, h := range m {
		h.OnCacheMiss(ctx, operation)
	}
}

func (m Multi) OnCacheSet(ctx context.Context, operation string, size int) {
	for _, h := range m {
		h.OnCacheSet(ctx, operation, size)
	}
}

func (m Multi) OnCacheError(ctx context.Context, operation string, err error) {
	for _, h := range m {
		h.OnCacheError(ctx, operation, err)
	}
}
