package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered per server so tests can use private registries.
type metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	commentsAdded   prometheus.Counter
	commentsLimited prometheus.Counter
	gateDenied      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appreview_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "appreview_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		commentsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "appreview_comments_added_total",
			Help: "Total number of comments added over HTTP",
		}),
		commentsLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "appreview_comments_rate_limited_total",
			Help: "Total number of comment posts rejected by the rate limiter",
		}),
		gateDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appreview_gate_denied_total",
				Help: "Total number of requests refused by an access gate",
			},
			[]string{"gate"},
		),
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records request counts and latency by matched route pattern.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
