package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)
	ctx := context.Background()

	h.OnRequest(ctx, "GET", "ows.omeda.com", "/comp/*")
	h.OnResponse(ctx, "GET", "ows.omeda.com", "/comp/*", 200, 20*time.Millisecond)
	h.OnResponse(ctx, "GET", "ows.omeda.com", "/comp/*", 404, 10*time.Millisecond)
	h.OnError(ctx, "POST", "ows.omeda.com", "/customer/*", errors.New("reset"))
	h.OnCacheMiss(ctx, "brand")
	h.OnCacheSet(ctx, "brand", 512)
	h.OnCacheHit(ctx, "brand")
	h.OnCacheHit(ctx, "brand")
	h.OnCacheError(ctx, "client", errors.New("down"))

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"requests 200", h.requestsTotal.WithLabelValues("GET", "ows.omeda.com", "200"), 1},
		{"requests 404", h.requestsTotal.WithLabelValues("GET", "ows.omeda.com", "404"), 1},
		{"errors", h.errorsTotal.WithLabelValues("POST", "ows.omeda.com"), 1},
		{"hits", h.cacheHits.WithLabelValues("brand"), 2},
		{"misses", h.cacheMisses.WithLabelValues("brand"), 1},
		{"sets", h.cacheSets.WithLabelValues("brand"), 1},
		{"bytes", h.cacheBytes.WithLabelValues("brand"), 512},
		{"cache errors", h.cacheErrors.WithLabelValues("client"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(h.requestDuration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestPrometheusHooksRegisterOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusHooks(reg)

	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewPrometheusHooks(reg)
}

func TestPrometheusHooksNilSafe(t *testing.T) {
	var h *PrometheusHooks
	ctx := context.Background()

	h.OnRequest(ctx, "GET", "h", "/p")
	h.OnResponse(ctx, "GET", "h", "/p", 200, time.Second)
	h.OnError(ctx, "GET", "h", "/p", nil)
	h.OnCacheHit(ctx, "brand")
	h.OnCacheMiss(ctx, "brand")
	h.OnCacheSet(ctx, "brand", 1)
	h.OnCacheError(ctx, "brand", nil)
}
