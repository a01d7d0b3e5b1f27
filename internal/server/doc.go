// Package server wires the attach listener, the command registry, and the
// metrics collector together, drives the single consumer loop, and serves
// the loopback diagnostics endpoint (Prometheus scrape, JSON status, and the
// HTTP enqueue trigger).
package server
