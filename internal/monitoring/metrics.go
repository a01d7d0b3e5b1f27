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

// Metrics holds all Prometheus metrics for the attach listener.
type Metrics struct {
	// Enqueue metrics
	EnqueuesTotal *prometheus.CounterVec

	// Dequeue metrics
	DequeuesTotal     *prometheus.CounterVec
	TransportFailures *prometheus.CounterVec
	DroppedRequests   prometheus.Counter

	// Command execution metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Queue state
	QueueDepth prometheus.Gauge
	SlotsFree  prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry

	// Snapshot for the JSON status endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current counter values for the JSON status API.
type Snapshot struct {
	Accepted          int64 `json:"accepted"`
	Rejected          int64 `json:"rejected"`
	Serviced          int64 `json:"serviced"`
	Dropped           int64 `json:"dropped"`
	TransportFailures int64 `json:"transport_failures"`
}

// NewMetrics creates a metrics collector backed by its own registry, so
// multiple instances (one per test, typically) never collide.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &Metrics{
		startTime: time.Now(),
		registry:  registry,

		EnqueuesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attach_enqueues_total",
				Help: "Total enqueue attempts by resulting status",
			},
			[]string{"status"},
		),
		DequeuesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attach_dequeues_total",
				Help: "Total requests dequeued by protocol version",
			},
			[]string{"version"},
		),
		TransportFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attach_transport_failures_total",
				Help: "Channel open/decode/reply failures by stage",
			},
			[]string{"stage"},
		),
		DroppedRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "attach_dropped_requests_total",
				Help: "Requests silently dropped before reaching a handler",
			},
		),
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attach_commands_total",
				Help: "Commands executed by name and result code",
			},
			[]string{"command", "code"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "attach_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"command"},
		),
		QueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "attach_queue_depth",
				Help: "Requests currently enqueued awaiting the consumer",
			},
		),
		SlotsFree: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "attach_slots_free",
				Help: "Request slots currently on the free list",
			},
		),
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "attach_uptime_seconds",
				Help: "Seconds since the listener started",
			},
		),
	}
}

// Handler returns the Prometheus scrape handler for this collector.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordEnqueue records one enqueue attempt and its status.
func (m *Metrics) RecordEnqueue(status string, accepted bool) {
	m.EnqueuesTotal.WithLabelValues(status).Inc()

	m.mu.Lock()
	if accepted {
		m.snapshot.Accepted++
	} else {
		m.snapshot.Rejected++
	}
	m.mu.Unlock()
}

// RecordDequeue records one request handed to version dispatch.
func (m *Metrics) RecordDequeue(version string) {
	m.DequeuesTotal.WithLabelValues(version).Inc()
}

// RecordTransportFailure records a channel failure at the given stage and
// the silent drop it causes.
func (m *Metrics) RecordTransportFailure(stage string) {
	m.TransportFailures.WithLabelValues(stage).Inc()
	m.DroppedRequests.Inc()

	m.mu.Lock()
	m.snapshot.TransportFailures++
	m.snapshot.Dropped++
	m.mu.Unlock()
}

// RecordDrop records a request dropped without a transport failure (unknown
// version tag).
func (m *Metrics) RecordDrop() {
	m.DroppedRequests.Inc()

	m.mu.Lock()
	m.snapshot.Dropped++
	m.mu.Unlock()
}

// RecordCommand records one completed command execution.
func (m *Metrics) RecordCommand(command string, code string, duration time.Duration) {
	m.CommandsTotal.WithLabelValues(command, code).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.Serviced++
	m.mu.Unlock()
}

// SetQueueState updates the queue depth and free slot gauges.
func (m *Metrics) SetQueueState(depth, free int) {
	m.QueueDepth.Set(float64(depth))
	m.SlotsFree.Set(float64(free))
}

// UpdateUptime refreshes the uptime gauge.
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// GetSnapshot returns current counter values for the JSON status API.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
