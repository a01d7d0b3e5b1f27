// Package monitoring provides Prometheus metrics for the attach listener:
// enqueue outcomes, dequeue dispatch, transport failures, command execution
// latency, and queue/pool gauges. Each Metrics instance carries its own
// registry so collectors never collide across instances.
package monitoring
