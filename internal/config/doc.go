// Package config loads daemon configuration from environment variables and
// the optional YAML command manifest.
package config
