package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miniblog_http_requests_total",
		Help: "Total HTTP requests handled, by method and status code.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "miniblog_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// Metrics records request counts and latencies for the /metrics
// endpoint. Status labels use the code actually written, not the
// route pattern, so unmatched routes are counted too.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
