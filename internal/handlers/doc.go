// Package handlers ships the builtin diagnostic commands: liveness checks,
// goroutine dumps, memory statistics, environment listing, and forced
// garbage collection. Each handler is a registry.Handler and can be
// disabled through the command manifest.
package handlers
