// Package channel provides the named byte-stream transport between the
// target process and an attach client.
//
// A channel is a Unix domain socket created and owned by the client under
// the listener's namespace prefix. The target end opens it by name in
// read-only, write-only, or read-write mode, reads the request body (v2),
// writes the reply, flushes, and closes. Close is idempotent.
package channel
