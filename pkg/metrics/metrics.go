// Package metrics provides Prometheus instrumentation for Vendix.
//
// It pre-defines the standard HTTP metrics plus the point-of-sale
// counters the dashboard scrapes. Wire it up once in the route file:
//
//	r.Use(metrics.Middleware)
//	r.Get("/metrics", "metrics", metrics.Handler())
//
// Then scrape http://localhost:8080/metrics from Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in HTTP metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vendix",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vendix",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vendix",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})
)

// ─────────────────────────────────────────────
// Point-of-sale metrics
// ─────────────────────────────────────────────

var (
	// SalesCompleted counts finalized sales by payment method and currency.
	SalesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vendix",
			Subsystem: "pos",
			Name:      "sales_completed_total",
			Help:      "Total number of finalized sales.",
		},
		[]string{"payment_method", "currency"},
	)

	// SaleTotal observes the grand total of each finalized sale in the
	// currency it was charged in.
	SaleTotal = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vendix",
			Subsystem: "pos",
			Name:      "sale_total",
			Help:      "Grand totals of finalized sales.",
			Buckets:   []float64{50, 100, 250, 500, 1_000, 2_500, 5_000, 10_000, 25_000},
		},
		[]string{"currency"},
	)

	// LowStockProducts gauges how many catalog products are at or below
	// the low-stock threshold. Updated after every stock mutation.
	LowStockProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vendix",
		Subsystem: "pos",
		Name:      "low_stock_products",
		Help:      "Number of products at or below the low-stock threshold.",
	})

	// CacheHits / CacheMisses track catalog cache effectiveness.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vendix",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"driver"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vendix",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"driver"},
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry used by Vendix.
// Register your own metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		SalesCompleted,
		SaleTotal,
		LowStockProducts,
		CacheHits,
		CacheMisses,
	)
}

// Register lets you add your own prometheus.Collector to the Vendix registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// HTTP middleware + /metrics handler
// ─────────────────────────────────────────────

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every request with the built-in HTTP metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		RequestInFlight.Inc()
		defer RequestInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		status := strconv.Itoa(rec.status)
		RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
		RequestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
	})
}

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics page.
// Mount it on GET /metrics in your router.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ─────────────────────────────────────────────
// Helpers for app code
// ─────────────────────────────────────────────

// RecordSale records a finalized sale.
func RecordSale(paymentMethod, currency string, total float64) {
	SalesCompleted.WithLabelValues(paymentMethod, currency).Inc()
	SaleTotal.WithLabelValues(currency).Observe(total)
}
