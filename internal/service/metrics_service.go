package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the resolution
// pipeline and the HTTP surface.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	resolutionDuration prometheus.Observer
	resolutionsTotal   prometheus.Counter
	unresolvedTotal    prometheus.Counter
	ambiguousTotal     prometheus.Counter
	duplicatesTotal    prometheus.Counter
	unknownYearTotal   prometheus.Counter

	cacheLatency prometheus.Observer
	cacheWrite   prometheus.Observer
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
}

// NewMetricsService registers the service's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	resolutionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "task_resolution_duration_seconds",
		Help:    "Duration of full task resolution runs",
		Buckets: prometheus.DefBuckets,
	})

	resolutionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "task_resolutions_total",
		Help: "Total task resolution runs",
	})

	unresolvedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unresolved_subject_refs_total",
		Help: "Assignments whose subject reference matched no subject or link",
	})

	ambiguousTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ambiguous_link_resolutions_total",
		Help: "Year resolutions that had to choose between multiple shared-subject links",
	})

	duplicatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_assignments_dropped_total",
		Help: "Assignment rows dropped as duplicates of a surviving row",
	})

	unknownYearTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unknown_year_exclusions_total",
		Help: "Assignments excluded from student task lists for lack of a provable year",
	})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, resolutionDuration, resolutionsTotal,
		unresolvedTotal, ambiguousTotal, duplicatesTotal, unknownYearTotal,
		cacheLatency, cacheWrite, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		resolutionDuration: resolutionDuration,
		resolutionsTotal:   resolutionsTotal,
		unresolvedTotal:    unresolvedTotal,
		ambiguousTotal:     ambiguousTotal,
		duplicatesTotal:    duplicatesTotal,
		unknownYearTotal:   unknownYearTotal,
		cacheLatency:       cacheLatency,
		cacheWrite:         cacheWrite,
		cacheHits:          cacheHits,
		cacheMisses:        cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveResolution records one full resolution run and its findings.
func (m *MetricsService) ObserveResolution(duration time.Duration, unresolved, ambiguous, duplicates, unknownYear int) {
	if m == nil {
		return
	}
	m.resolutionsTotal.Inc()
	m.resolutionDuration.Observe(duration.Seconds())
	m.unresolvedTotal.Add(float64(unresolved))
	m.ambiguousTotal.Add(float64(ambiguous))
	m.duplicatesTotal.Add(float64(duplicates))
	m.unknownYearTotal.Add(float64(unknownYear))
}

// RecordCacheOperation records cache hit/miss metrics.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// ObserveCacheWrite tracks the duration of cache set operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil || m.cacheWrite == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}
