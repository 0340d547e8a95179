package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publicapi_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "publicapi_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// BackendSourceSelections counts which backend a read operation was
	// resolved against.
	BackendSourceSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publicapi_backend_source_selections_total",
			Help: "Read operations by backend source mode.",
		},
		[]string{"operation", "mode"},
	)
	BackendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publicapi_backend_fallbacks_total",
			Help: "Reads that fell back from the connector to the ledger.",
		},
		[]string{"operation"},
	)
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "publicapi_backend_request_duration_seconds",
			Help:    "Duration of calls to backend services.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation", "code"},
	)
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publicapi_validation_failures_total",
			Help: "Rejected requests by public error code.",
		},
		[]string{"code"},
	)
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "publicapi_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		},
	)
)

// Metrics records request count and latency. Routes are labelled by their
// chi pattern so payment ids do not explode cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		}()

		next.ServeHTTP(ww, r)
	})
}
