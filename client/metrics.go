package client

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventbrite_client",
			Name:      "requests_total",
			Help:      "HTTP requests issued, by method, host and status code (\"error\" on transport failure).",
		},
		[]string{"method", "host", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eventbrite_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of HTTP requests until response headers.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "host"},
	)

	apiErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventbrite_client",
			Name:      "api_errors_total",
			Help:      "Responses turned into API errors, by kind.",
		},
		[]string{"kind"},
	)
)

// metricsTransport records request counts and latency. It is always the
// outermost transport of a Client.
type metricsTransport struct{ base http.RoundTripper }

func (mt *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mt.base.RoundTrip(req)
	requestDuration.WithLabelValues(req.Method, req.URL.Host).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(req.Method, req.URL.Host, "error").Inc()
		return nil, err
	}
	requestsTotal.WithLabelValues(req.Method, req.URL.Host, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

func countAPIError(err error) {
	if kind := KindOf(err); kind != 0 {
		apiErrorsTotal.WithLabelValues(kind.String()).Inc()
	}
}
