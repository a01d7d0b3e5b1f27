package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Manifest enables or disables builtin commands by name. Absent manifest
// means every builtin is registered.
type Manifest struct {
	// Disabled lists command names that must not be registered.
	Disabled []string `yaml:"disabled"`
}

// LoadManifest parses a YAML command manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// IsDisabled reports whether the named command is switched off.
func (m *Manifest) IsDisabled(name string) bool {
	if m == nil {
		return false
	}
	for _, d := range m.Disabled {
		if d == name {
			return true
		}
	}
	return false
}
