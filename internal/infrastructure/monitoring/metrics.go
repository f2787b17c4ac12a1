package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Signal metrics
	PhaseTransitions *prometheus.CounterVec
	PhaseDuration    *prometheus.HistogramVec
	VehiclePhase     prometheus.Gauge
	CrossingActive   prometheus.Gauge
	CrossingsTotal   prometheus.Counter

	// Request metrics
	Requests    *prometheus.CounterVec
	RequestWait prometheus.Histogram

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	waits *WaitStats

	mu        sync.Mutex
	lastPhase string
	lastEntry time.Time
}

// NewMetrics creates a new metrics collector backed by its own registry, so
// several collectors can coexist in one process (tests, embedded use).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),
		waits:     NewWaitStats(DefaultWaitWindow),

		// Signal metrics
		PhaseTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crosswalk_phase_transitions_total",
				Help: "Total number of vehicle phase entries",
			},
			[]string{"phase"},
		),
		PhaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crosswalk_phase_duration_seconds",
				Help:    "Time spent in a vehicle phase before the next one was entered",
				Buckets: []float64{.1, .5, 1, 2, 3, 5, 7, 10, 15, 20, 30},
			},
			[]string{"phase"},
		),
		VehiclePhase: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crosswalk_vehicle_phase",
				Help: "Current vehicle phase (0=GREEN 1=YELLOW_TO_RED 2=RED 3=YELLOW_TO_GREEN)",
			},
		),
		CrossingActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crosswalk_crossing_active",
				Help: "1 while a pedestrian crossing cycle is in progress",
			},
		),
		CrossingsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crosswalk_crossings_total",
				Help: "Total number of accepted crossing requests",
			},
		),

		// Request metrics
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crosswalk_requests_total",
				Help: "Button pushes by source and outcome",
			},
			[]string{"source", "result"},
		),
		RequestWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "crosswalk_request_wait_seconds",
				Help:    "Time between a request being raised and being accepted",
				Buckets: []float64{.01, .1, .5, 1, 2, 5, 10, 20, 30, 60},
			},
		),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crosswalk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crosswalk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crosswalk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crosswalk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "crosswalk_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry all metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus exposition handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// UptimeDuration returns how long the collector has existed
func (m *Metrics) UptimeDuration() time.Duration {
	return time.Since(m.startTime)
}

// RecordPhase records entry into a vehicle phase and closes out the previous one
func (m *Metrics) RecordPhase(phase string, index int, crossing bool) {
	if m == nil {
		return
	}
	now := time.Now()

	m.mu.Lock()
	if m.lastPhase != "" {
		m.PhaseDuration.WithLabelValues(m.lastPhase).Observe(now.Sub(m.lastEntry).Seconds())
	}
	m.lastPhase = phase
	m.lastEntry = now
	m.mu.Unlock()

	m.PhaseTransitions.WithLabelValues(phase).Inc()
	m.VehiclePhase.Set(float64(index))
	if crossing {
		m.CrossingActive.Set(1)
	} else {
		m.CrossingActive.Set(0)
	}
}

// RecordRequest records the outcome of a button push
func (m *Metrics) RecordRequest(source, result string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(source, result).Inc()
}

// RecordAccepted records an accepted request and how long it waited
func (m *Metrics) RecordAccepted(wait time.Duration) {
	if m == nil {
		return
	}
	m.CrossingsTotal.Inc()
	m.RequestWait.Observe(wait.Seconds())
	m.waits.Add(wait)
}

// WaitSummary summarizes recent request waits
func (m *Metrics) WaitSummary() WaitSummary {
	if m == nil {
		return WaitSummary{}
	}
	return m.waits.Summary()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}
