package metrics

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of requests by path, method and status code.",
		},
		[]string{"path", "method", "code"},
	)
	httpRequestDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "http_requests_duration_seconds",
			Help:       "Time taken to serve the request by path and method.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"path", "method"},
	)
	httpRequestInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of requests currently being served by path and method.",
		},
		[]string{"path", "method"},
	)
)

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriterWrapper) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriterWrapper) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// HTTPMetricMiddleware records request count, latency and in-flight requests.
// The path label is the mux route template when one matched, so that path
// parameters don't blow up label cardinality.
func HTTPMetricMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		labels := prometheus.Labels{
			"path":   r.URL.Path,
			"method": r.Method,
		}
		if route := mux.CurrentRoute(r); route != nil {
			if routePath, err := route.GetPathTemplate(); err == nil {
				labels["path"] = routePath
			}
		}
		rw := &responseWriterWrapper{w, http.StatusOK}
		httpRequestInFlight.With(labels).Inc()
		timer := prometheus.NewTimer(httpRequestDuration.With(labels))
		defer func() {
			timer.ObserveDuration()
			httpRequestInFlight.With(labels).Dec()
			httpRequestsTotal.WithLabelValues(labels["path"], labels["method"], strconv.Itoa(rw.statusCode)).Inc()
		}()
		next.ServeHTTP(rw, r)
	})
}
