// Package prometheus implements [observability.Hooks] on top of the
// Prometheus client library.
//
// Metrics (all prefixed with the namespace passed to [NewCollector]):
//   - {ns}_requests_total{endpoint,status}: responses by HTTP status class
//   - {ns}_request_errors_total{endpoint}: requests that produced no response
//   - {ns}_request_duration_seconds{endpoint}: request latency
//   - {ns}_decode_fallbacks_total{endpoint}: report bodies returned as text
//     because they were not valid JSON
//   - {ns}_requests_in_flight{endpoint}: requests currently waiting for a response
package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/builtwith/pkg/observability"
)

// Collector records client events as Prometheus metrics.
// It is safe for concurrent use; the underlying vectors synchronize internally.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	durationSeconds *prometheus.HistogramVec
	fallbacksTotal  *prometheus.CounterVec
	inFlight        *prometheus.GaugeVec
}

// NewCollector creates a Collector and registers its metrics with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
//
// Panics if registration fails (e.g. a second collector with the same
// namespace on the same registry).
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "API responses by endpoint and HTTP status class.",
			},
			[]string{"endpoint", "status"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_errors_total",
				Help:      "API requests that failed before a response arrived.",
			},
			[]string{"endpoint"},
		),
		durationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "API request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		fallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_fallbacks_total",
				Help:      "Report responses returned as raw text after a failed JSON parse.",
			},
			[]string{"endpoint"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "API requests waiting for a response.",
			},
			[]string{"endpoint"},
		),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.errorsTotal,
		c.durationSeconds,
		c.fallbacksTotal,
		c.inFlight,
	)
	return c
}

// OnRequest marks a request as in flight.
func (c *Collector) OnRequest(_ context.Context, endpoint, _, _ string) {
	c.inFlight.WithLabelValues(endpoint).Inc()
}

// OnResponse counts the response by status class and records its latency.
func (c *Collector) OnResponse(_ context.Context, endpoint string, statusCode int, d time.Duration) {
	c.inFlight.WithLabelValues(endpoint).Dec()
	c.requestsTotal.WithLabelValues(endpoint, statusClass(statusCode)).Inc()
	c.durationSeconds.WithLabelValues(endpoint).Observe(d.Seconds())
}

// OnError counts a request that produced no response.
func (c *Collector) OnError(_ context.Context, endpoint string, _ error) {
	c.inFlight.WithLabelValues(endpoint).Dec()
	c.errorsTotal.WithLabelValues(endpoint).Inc()
}

// OnFallback counts a report body returned as text.
func (c *Collector) OnFallback(_ context.Context, endpoint string, _ error) {
	c.fallbacksTotal.WithLabelValues(endpoint).Inc()
}

// statusClass collapses a status code to "2xx", "4xx", ... to keep label
// cardinality bounded.
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code/100) + "xx"
}

var _ observability.Hooks = (*Collector)(nil)
