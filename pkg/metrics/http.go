// Package metrics provides Prometheus metrics for the HTTP API and change notifications.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics contains request counters and latency histograms.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec   // by method, route, status
	RequestDuration *prometheus.HistogramVec // by method, route

	ChangeEventsTotal  *prometheus.CounterVec // by table, action
	WebsocketClients   prometheus.Gauge
	ViewFallbacksTotal *prometheus.CounterVec // by view
}

// NewHTTPMetrics creates and registers the metrics on the given registry.
func NewHTTPMetrics(registry prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refurb_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "refurb_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		ChangeEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refurb_change_events_total",
				Help: "Table change notifications dispatched to subscribers",
			},
			[]string{"table", "action"},
		),
		WebsocketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "refurb_websocket_clients",
			Help: "Currently connected websocket clients",
		}),
		ViewFallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refurb_view_fallbacks_total",
				Help: "List reads that fell back from a convenience view to the base table",
			},
			[]string{"view"},
		),
	}

	for _, c := range []prometheus.Collector{m.RequestsTotal, m.RequestDuration, m.ChangeEventsTotal, m.WebsocketClients, m.ViewFallbacksTotal} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register http metrics: %w", err)
		}
	}
	return m, nil
}

func (m *HTTPMetrics) Observe(method, route, status string, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *HTTPMetrics) ChangeEvent(table, action string) {
	m.ChangeEventsTotal.WithLabelValues(table, action).Inc()
}

func (m *HTTPMetrics) ViewFallback(view string) {
	m.ViewFallbacksTotal.WithLabelValues(view).Inc()
}
