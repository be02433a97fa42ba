// Package metrics exposes run counters on a private Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for one crawl run.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	Registry         *prometheus.Registry
	FetchesTotal     *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
	LoadMoreClicks   prometheus.Counter
	CookieBannerMiss prometheus.Counter
	ProductsTotal    *prometheus.CounterVec
	CategoryFailures *prometheus.CounterVec
}

// New constructs and registers all collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopcrawl_fetches_total",
			Help: "Pages fetched, by mode (static or interactive).",
		},
		[]string{"mode"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopcrawl_fetch_duration_seconds",
			Help:    "Time to obtain a page's markup, by mode.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"mode"},
	)
	clicks := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopcrawl_load_more_clicks_total",
			Help: "Clicks issued on load more controls.",
		},
	)
	cookieMiss := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopcrawl_cookie_banner_missing_total",
			Help: "Interactive sessions where the cookie banner could not be dismissed.",
		},
	)
	products := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopcrawl_products_total",
			Help: "Products written, by category.",
		},
		[]string{"category"},
	)
	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopcrawl_category_failures_total",
			Help: "Failed categories, by category and error code.",
		},
		[]string{"category", "code"},
	)

	registry.MustRegister(fetches, duration, clicks, cookieMiss, products, failures)

	return &Metrics{
		Registry:         registry,
		FetchesTotal:     fetches,
		FetchDuration:    duration,
		LoadMoreClicks:   clicks,
		CookieBannerMiss: cookieMiss,
		ProductsTotal:    products,
		CategoryFailures: failures,
	}
}

// ObserveFetch counts a fetch and records how long it took
func (m *Metrics) ObserveFetch(mode string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(mode).Inc()
	m.FetchDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// IncClicks counts one load more click
func (m *Metrics) IncClicks() {
	if m == nil {
		return
	}
	m.LoadMoreClicks.Inc()
}

// IncCookieBannerMiss counts a cookie banner that could not be dismissed
func (m *Metrics) IncCookieBannerMiss() {
	if m == nil {
		return
	}
	m.CookieBannerMiss.Inc()
}

// AddProducts records the number of products written for a category
func (m *Metrics) AddProducts(category string, n int) {
	if m == nil {
		return
	}
	m.ProductsTotal.WithLabelValues(category).Add(float64(n))
}

// IncFailure counts a failed category
func (m *Metrics) IncFailure(category, code string) {
	if m == nil {
		return
	}
	m.CategoryFailures.WithLabelValues(category, code).Inc()
}

// WriteTextfile dumps the registry in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
