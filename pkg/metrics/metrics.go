package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Provider call outcomes.
const (
	ProviderSuccess = "success"
	ProviderFailure = "failure"
)

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	CacheLookups     *prometheus.CounterVec
	ProviderCalls    *prometheus.CounterVec
	ProviderDuration prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RateLimitHits       *prometheus.CounterVec
}

// New registers all collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faq_translation_cache_lookups_total",
				Help: "Translation cache lookups by result (hit, miss, error)",
			},
			[]string{"result"},
		),
		ProviderCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faq_translation_provider_calls_total",
				Help: "Translation provider calls by result (success, failure)",
			},
			[]string{"result"},
		),
		ProviderDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "faq_translation_provider_duration_seconds",
				Help:    "Translation provider latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route and status code",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter by route",
			},
			[]string{"path"},
		),
	}
}

// RecordCacheLookup counts a translation cache lookup.
func (m *Metrics) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordProviderCall counts a provider call and observes its latency.
func (m *Metrics) RecordProviderCall(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProviderCalls.WithLabelValues(result).Inc()
	m.ProviderDuration.Observe(elapsed.Seconds())
}

// RecordHTTPRequest records a finished HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordRateLimitHit counts a rejected request.
func (m *Metrics) RecordRateLimitHit(path string) {
	if m == nil {
		return
	}
	m.RateLimitHits.WithLabelValues(path).Inc()
}

func statusClass(code int) string {
	switch code {
	case 200, 201, 204, 400, 404, 429, 500:
		return strconv.Itoa(code)
	}
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "unknown"
	}
}
