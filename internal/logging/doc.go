// Package logging provides structured logging built on zap. Production
// output is JSON; development output is colored console text.
package logging
