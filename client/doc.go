// Package client implements the peer side of an attach exchange: it creates
// the named channel, triggers the target's enqueue out-of-band, writes the
// encoded request (v2), and reads back the result code and payload.
package client
