package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the recorders.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Metrics holds all Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Dashboard state
	DashboardsActive prometheus.Gauge
	WidgetsActive    prometheus.Gauge
	StateSaves       *prometheus.CounterVec
	StateImports     *prometheus.CounterVec

	// Feeds and widgets
	FeedFetches   *prometheus.CounterVec
	FeedDuration  *prometheus.HistogramVec
	WidgetRenders *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
}

// NewMetrics creates a collector backed by its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),

		DashboardsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dashboard_dashboards",
				Help: "Number of dashboards in the current state",
			},
		),
		WidgetsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dashboard_widgets",
				Help: "Number of widgets across all dashboards",
			},
		),
		StateSaves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_state_saves_total",
				Help: "State persistence attempts by outcome",
			},
			[]string{"outcome"},
		),
		StateImports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_state_imports_total",
				Help: "State imports by outcome",
			},
			[]string{"outcome"},
		),

		FeedFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_feed_fetches_total",
				Help: "Feed fetches by outcome",
			},
			[]string{"outcome"},
		),
		FeedDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_feed_fetch_duration_seconds",
				Help:    "Feed fetch duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		WidgetRenders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_widget_renders_total",
				Help: "Widget renders by type and outcome",
			},
			[]string{"type", "outcome"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dashboard_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format for this collector.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetStateSize publishes the dashboard and widget counts.
func (m *Metrics) SetStateSize(dashboards, widgets int) {
	if m == nil {
		return
	}
	m.DashboardsActive.Set(float64(dashboards))
	m.WidgetsActive.Set(float64(widgets))
}

// RecordStateSave counts a persistence attempt.
func (m *Metrics) RecordStateSave(err error) {
	if m == nil {
		return
	}
	m.StateSaves.WithLabelValues(outcomeOf(err)).Inc()
}

// RecordStateImport counts an import attempt.
func (m *Metrics) RecordStateImport(ok bool) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	m.StateImports.WithLabelValues(outcome).Inc()
}

// RecordFeedFetch records a completed feed fetch.
func (m *Metrics) RecordFeedFetch(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.FeedFetches.WithLabelValues(outcome).Inc()
	m.FeedDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordWidgetRender counts a widget render by type and outcome.
func (m *Metrics) RecordWidgetRender(widgetType, outcome string) {
	if m == nil {
		return
	}
	m.WidgetRenders.WithLabelValues(widgetType, outcome).Inc()
}

// RecordWSMessage records a WebSocket message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections.
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections.
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
