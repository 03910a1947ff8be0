package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litreview_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "litreview_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	FeedBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "litreview_feed_build_duration_seconds",
			Help:    "Time spent merging and paginating a feed",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litreview_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"},
	)

	SignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "litreview_signups_total",
			Help: "Accounts created through the signup form",
		},
	)
)

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func ObserveFeed(mode string, duration time.Duration) {
	FeedBuildDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordLogin counts a login attempt; result is "success", "failure" or
// "throttled".
func RecordLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

func RecordSignup() {
	SignupsTotal.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
