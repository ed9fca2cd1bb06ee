// Package registry loads named launch targets from a configuration file, so
// operators refer to workers by name instead of repeating command lines.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Target describes one launchable worker.
type Target struct {
	Name    string            `yaml:"name" json:"name"`
	Command string            `yaml:"command" json:"command"`
	Args    []string          `yaml:"args" json:"args"`
	Env     map[string]string `yaml:"env" json:"env"`
	Dir     string            `yaml:"dir" json:"dir"`
	// Timeout bounds the wait for the worker's handshake. Zero means the
	// launcher default applies.
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

// File represents the structure of launchers.yaml.
type File struct {
	Targets []Target `yaml:"targets" json:"targets"`
}

// Load reads a configuration file (YAML or JSON by extension) and returns a
// map of target names to targets. Unnamed entries are skipped.
func Load(path string) (map[string]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read launcher config: %w", err)
	}

	var cfg File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse launcher config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse launcher config %s: %w", path, err)
		}
	}

	targets := make(map[string]Target)
	for _, target := range cfg.Targets {
		if target.Name == "" {
			continue
		}
		targets[target.Name] = target
	}
	return targets, nil
}

// Duration wraps time.Duration to accept "30s"-style strings in both YAML
// and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return d.parse(raw)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.parse(raw)
}

func (d *Duration) parse(raw string) error {
	if strings.TrimSpace(raw) == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}
