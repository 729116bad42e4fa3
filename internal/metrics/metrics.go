package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RelayConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "collabie_relay_connections",
		Help: "Current number of active relay connections",
	})
	RelayEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collabie_relay_events_total",
		Help: "Total number of relay events handled, by event name",
	}, []string{"event"})
	HttpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HttpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	JobsProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collabie_jobs_processed_total",
		Help: "Total number of background jobs processed, by type and result",
	}, []string{"type", "result"})
)

func init() {
	prometheus.MustRegister(RelayConnections, RelayEventsTotal, HttpRequestsTotal, HttpRequestDuration, JobsProcessedTotal)
}

// HTTPMiddleware records request counts and latency per method, path and
// status.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		labels := prometheus.Labels{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": strconv.Itoa(ww.Status()),
		}
		HttpRequestsTotal.With(labels).Inc()
		HttpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}
