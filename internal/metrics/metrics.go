package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes recorded by HTTPMetrics
const (
	OutcomeSuccess     = "success"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
	OutcomeNetwork     = "network"
	OutcomeBlocked     = "blocked"
)

// HTTPMetrics counts and times backend requests
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request collectors on reg
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskflow_http_requests_total",
				Help: "Total number of backend requests by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taskflow_http_request_duration_seconds",
				Help:    "Duration of backend requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// Observe records one finished request. A nil receiver is a no-op.
func (m *HTTPMetrics) Observe(method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Requests returns the counter for one method/outcome pair
func (m *HTTPMetrics) Requests(method, outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(method, outcome)
}

// OutcomeForStatus maps an HTTP status code to an outcome label
func OutcomeForStatus(status int) string {
	switch {
	case status >= 200 && status < 300:
		return OutcomeSuccess
	case status >= 500:
		return OutcomeServerError
	case status >= 400:
		return OutcomeClientError
	default:
		return "status_" + strconv.Itoa(status)
	}
}

// WriteTextfile writes everything gathered from g to path in the text exposition format,
// for pickup by a node exporter textfile collector
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
