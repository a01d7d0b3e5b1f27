// Package types holds the shared command and result types exchanged between
// the consumer loop and command handlers.
package types
