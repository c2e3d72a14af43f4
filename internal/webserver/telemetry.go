package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Telemetry holds the Prometheus metrics of one server. Each server owns its
// registry so several servers (or tests) can run in one process.
type Telemetry struct {
	registry *prometheus.Registry

	// requests counts API requests.
	// Labels: route (the matched mux pattern), code
	requests *prometheus.CounterVec

	// duration measures request latency in seconds.
	// Labels: route
	duration *prometheus.HistogramVec

	// analyzed counts batches turned into an analysis by a request.
	analyzed prometheus.Counter
}

// NewTelemetry creates and registers the server metrics on a fresh registry.
func NewTelemetry() *Telemetry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Telemetry{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridlens_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridlens_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"route"},
		),
		analyzed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gridlens_batches_analyzed_total",
				Help: "Total number of batches analyzed while serving requests",
			},
		),
	}
}

// BatchAnalyzed records one batch analysis.
func (t *Telemetry) BatchAnalyzed() {
	t.analyzed.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency. The route label is the mux
// pattern that matched, so path parameters do not explode cardinality.
func (t *Telemetry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		t.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		t.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
