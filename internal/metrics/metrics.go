package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikhailRaia/shorturls/internal/logger"
)

// Lookup results recorded by RecordLookup.
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupExpired  = "expired"
)

// Shortcode kinds recorded by RecordCreated.
const (
	KindGenerated = "generated"
	KindCustom    = "custom"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shorturls_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorturls_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	GRPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorturls_grpc_requests_total",
			Help: "Total number of gRPC requests",
		},
		[]string{"method", "code"},
	)

	CreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorturls_created_total",
			Help: "Short URLs created, by shortcode kind",
		},
		[]string{"kind"},
	)

	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorturls_lookups_total",
			Help: "Shortcode lookups, by result",
		},
		[]string{"result"},
	)

	// AllocationCollisionsTotal counts generated codes that were already taken.
	AllocationCollisionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturls_allocation_collisions_total",
			Help: "Generated shortcodes discarded because they already existed",
		},
	)

	StoreEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shorturls_store_entries",
			Help: "Entries held in the store, expired ones included",
		},
	)

	SweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturls_swept_total",
			Help: "Expired entries removed by the sweeper",
		},
	)
)

func RecordCreated(kind string) {
	CreatedTotal.WithLabelValues(kind).Inc()
}

func RecordLookup(result string) {
	LookupsTotal.WithLabelValues(result).Inc()
}

func RecordCollision() {
	AllocationCollisionsTotal.Inc()
}

func SetStoreEntries(n int) {
	StoreEntries.Set(float64(n))
}

func RecordSwept(n int) {
	SweptTotal.Add(float64(n))
}

func RecordGRPC(method, code string) {
	GRPCRequestsTotal.WithLabelValues(method, code).Inc()
}

// Middleware records request count and latency labelled by chi route pattern,
// which keeps shortcodes out of the label set.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := logger.NewResponseWriter(w)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := strconv.Itoa(ww.Status())

		HTTPRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}
