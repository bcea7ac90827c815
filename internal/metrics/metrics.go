// Package metrics holds the Prometheus collectors for the options API.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderBuckets covers provider round trips from 50ms to 10s.
var ProviderBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

var (
	// RequestsTotal counts inbound HTTP requests by method, route and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "options_api_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records inbound HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "options_api_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ProviderRequestsTotal counts requests sent to the options-data provider.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "options_api_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"endpoint", "status"},
	)

	// ProviderLatency records provider latency in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "options_api_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: ProviderBuckets,
		},
		[]string{"endpoint"},
	)

	// ContractsReturned counts normalized contracts returned to callers by contract type.
	ContractsReturned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "options_api_contracts_returned_total",
			Help: "Contracts returned",
		},
		[]string{"contract_type"},
	)

	// RateLimitRejectedTotal counts inbound requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "options_api_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ProviderRequestsTotal,
		ProviderLatency,
		ContractsReturned,
		RateLimitRejectedTotal,
	)
}

// StatusClass collapses an HTTP status code to "2xx", "4xx" and so on.
// Zero means the request never produced a response.
func StatusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return fmt.Sprintf("%dxx", code/100)
}
