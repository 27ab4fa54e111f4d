// Package config loads optional project settings for the exoquery server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// defaultRequestTimeout bounds each outbound TAP query.
const defaultRequestTimeout = 30 * time.Second

// ServerConfig holds settings loaded from exoquery.yml. Every field is
// optional; the zero value runs against the public Exoplanet Archive over
// stdio.
type ServerConfig struct {
	TAPBaseURL     string `yaml:"tapBaseURL,omitempty"`
	RequestTimeout string `yaml:"requestTimeout,omitempty"` // Go duration string, e.g. "45s"
	HTTPAddr       string `yaml:"httpAddr,omitempty"`       // serve streamable HTTP instead of stdio
	LogLevel       string `yaml:"logLevel,omitempty"`       // zerolog level name
}

// Load attempts to read exoquery.yml or exoquery.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ServerConfig, error) {
	for _, name := range []string{"exoquery.yml", "exoquery.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ServerConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ServerConfig{}, nil
}

// Timeout parses RequestTimeout, falling back to the 30s default when unset.
func (c *ServerConfig) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return defaultRequestTimeout, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("config: parse requestTimeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: requestTimeout must be positive, got %s", d)
	}
	return d, nil
}
