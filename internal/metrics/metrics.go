// file: internal/metrics/metrics.go
// version: 2.0.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "catalog_search"

var (
	registerOnce sync.Once

	searchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Total number of search requests by entity kind",
	}, []string{"kind"})
	searchResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_results",
		Help:      "Number of records returned per search by entity kind",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"kind"})
	searchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Histogram of search durations in seconds by entity kind",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs up to ~26s
	}, []string{"kind"})
	suggestRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggest_requests_total",
		Help:      "Total number of suggestion requests by entity kind",
	}, []string{"kind"})

	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of search cache hits",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of search cache misses",
	})

	catalogRecords = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_records",
		Help:      "Current number of records in the loaded catalog by entity kind",
	}, []string{"kind"})
	catalogReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_reloads_total",
		Help:      "Total number of catalog reload attempts by outcome",
	}, []string{"outcome"})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchRequests, searchResults, searchDuration, suggestRequests,
			cacheHits, cacheMisses, catalogRecords, catalogReloads)
	})
}

// Search helpers
func IncSearch(kind string)  { searchRequests.WithLabelValues(kind).Inc() }
func IncSuggest(kind string) { suggestRequests.WithLabelValues(kind).Inc() }
func ObserveSearch(kind string, results int, d time.Duration) {
	searchResults.WithLabelValues(kind).Observe(float64(results))
	searchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// Cache helpers
func IncCacheHit()  { cacheHits.Inc() }
func IncCacheMiss() { cacheMisses.Inc() }

// Catalog
func SetCatalogRecords(kind string, n int) { catalogRecords.WithLabelValues(kind).Set(float64(n)) }
func IncReload(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	catalogReloads.WithLabelValues(outcome).Inc()
}
