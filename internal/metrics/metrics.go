package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Checkout results
const (
	ResultCreated       = "created"
	ResultInvalid       = "invalid"
	ResultProviderError = "provider_error"
)

// TypeUnhandled labels webhook events the dispatcher does not act on.
const TypeUnhandled = "unhandled"

type Metrics struct {
	registry *prometheus.Registry

	// CheckoutSessions counts checkout attempts by mode and result.
	CheckoutSessions *prometheus.CounterVec
	// WebhookEvents counts verified webhook events by type.
	WebhookEvents *prometheus.CounterVec
	// RequestDuration records HTTP handler latency by route and status.
	RequestDuration *prometheus.HistogramVec
}

// New builds the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		CheckoutSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_sessions_total",
			Help:      "Count of checkout session creation attempts by outcome.",
		}, []string{"mode", "result"}),
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Count of verified webhook events by type.",
		}, []string{"type"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.CheckoutSessions,
		m.WebhookEvents,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Checkout(mode, result string) {
	if mode == "" {
		mode = "unknown"
	}
	m.CheckoutSessions.WithLabelValues(mode, result).Inc()
}

func (m *Metrics) WebhookEvent(eventType string) {
	m.WebhookEvents.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
