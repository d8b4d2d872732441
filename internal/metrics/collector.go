// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the Prometheus metrics for the detection service.
type Collector struct {
	detectionsTotal   *prometheus.CounterVec
	detectionDuration prometheus.Histogram
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewCollector registers the service metrics with the given registerer.
// Tests pass a fresh registry; the server passes the default one.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		detectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aigc_detections_total",
			Help: "Completed detections by resulting risk level.",
		}, []string{"risk_level"}),
		detectionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "aigc_detection_duration_seconds",
			Help:    "End-to-end detection latency including the engine call.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "aigc_analysis_cache_hits_total",
			Help: "Detections served from the analysis cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "aigc_analysis_cache_misses_total",
			Help: "Detections that had to call the engine.",
		}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aigc_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aigc_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveDetection records one completed detection.
func (c *Collector) ObserveDetection(riskLevel string, elapsed time.Duration) {
	c.detectionsTotal.WithLabelValues(riskLevel).Inc()
	c.detectionDuration.Observe(elapsed.Seconds())
}

// ObserveCache records a cache lookup outcome.
func (c *Collector) ObserveCache(hit bool) {
	if hit {
		c.cacheHits.Inc()
	} else {
		c.cacheMisses.Inc()
	}
}

// ObserveHTTPRequest records one served HTTP request.
func (c *Collector) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
