package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finna_upstream_requests_total",
		Help: "Total number of requests sent to the Finna API",
	}, []string{"endpoint", "code"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "finna_upstream_request_duration_seconds",
		Help:    "Duration of Finna API requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finna_ws_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "path", "status"})
)

// ObserveUpstream records one Finna API call. A status of 0 means the request
// never got a response.
func ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(endpoint, code).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
