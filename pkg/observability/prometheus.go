package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements Hooks with Prometheus metrics. It is safe for
// concurrent use.
//
// Endpoint paths are not used as labels: Omeda paths embed customer ids
// and email addresses, which would make label cardinality unbounded.
type PrometheusHooks struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheSets   *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec
	cacheErrors *prometheus.CounterVec
}

// NewPrometheusHooks registers the client metrics on reg. A nil reg uses
// the default registerer.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &PrometheusHooks{
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omeda_requests_total",
				Help: "Total number of Omeda API requests that received a response",
			},
			[]string{"method", "host", "status_code"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "omeda_request_duration_seconds",
				Help:    "Duration of Omeda API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "host"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omeda_request_errors_total",
				Help: "Total number of Omeda API requests that failed without a response",
			},
			[]string{"method", "host"},
		),
		cacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omeda_cache_hits_total",
				Help: "Total number of response cache hits",
			},
			[]string{"operation"},
		),
		cacheMisses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omeda_cache_misses_total",
				Help: "Total number of response cache misses",
			},
			[]string{"operation"},
		),
		cacheSets: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omeda_cache_sets_total",
				Help: "Total number of response cache writes",
			},
			[]string{"operation"},
		),
		cacheBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omeda_cache_set_bytes_total",
				Help: "Total bytes written to the response cache",
			},
			[]string{"operation"},
		),
		cacheErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omeda_cache_errors_total",
				Help: "Total number of failed response cache operations",
			},
			[]string{"operation"},
		),
	}
}

// OnRequest is a no-op; requests are counted when they complete.
func (p *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

// OnResponse records request count and duration.
func (p *PrometheusHooks) OnResponse(_ context.Context, method, host, _ string, statusCode int, duration time.Duration) {
	if p == nil {
		return
	}
	p.requestsTotal.WithLabelValues(method, host, strconv.Itoa(statusCode)).Inc()
	p.requestDuration.WithLabelValues(method, host).Observe(duration.Seconds())
}

// OnError records a transport failure.
func (p *PrometheusHooks) OnError(_ context.Context, method, host, _ string, _ error) {
	if p == nil {
		return
	}
	p.errorsTotal.WithLabelValues(method, host).Inc()
}

// OnCacheHit records a cache hit.
func (p *PrometheusHooks) OnCacheHit(_ context.Context, operation string) {
	if p == nil {
		return
	}
	p.cacheHits.WithLabelValues(operation).Inc()
}

// OnCacheMiss records a cache miss.
func (p *PrometheusHooks) OnCacheMiss(_ context.Context, operation string) {
	if p == nil {
		return
	}
	p.cacheMisses.WithLabelValues(operation).Inc()
}

// OnCacheSet records a cache write and its size.
func (p *PrometheusHooks) OnCacheSet(_ context.Context, operation string, size int) {
	if p == nil {
		return
	}
	p.cacheSets.WithLabelValues(operation).Inc()
	p.cacheBytes.WithLabelValues(operation).Add(float64(size))
}

// OnCacheError records a failed cache operation.
func (p *PrometheusHooks) OnCacheError(_ context.Context, operation string, _ error) {
	if p == nil {
		return
	}
	p.cacheErrors.WithLabelValues(operation).Inc()
}

var _ Hooks = (*PrometheusHooks)(nil)
