// Package config loads arbor.yaml, the CLI's project configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jward/arbor"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up from the working directory.
const FileName = "arbor.yaml"

// Config holds CLI defaults and project layer labels.
type Config struct {
	Format   string         `yaml:"format"`
	LogLevel string         `yaml:"log_level"`
	Layers   map[int]string `yaml:"layers"`
	Watch    WatchConfig    `yaml:"watch"`
}

// WatchConfig configures --watch.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Format:   "json",
		LogLevel: "warn",
		Layers:   map[int]string{},
		Watch:    WatchConfig{Debounce: 200 * time.Millisecond},
	}
}

// Merge overlays the non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	for i, name := range other.Layers {
		c.Layers[i] = name
	}
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}

// Validate checks the format, level, debounce and layer slots.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("config: invalid format %q: must be json or text", c.Format)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if _, err := c.LayerTable(); err != nil {
		return err
	}
	return nil
}

// LayerTable returns the built-in layers overlaid with the configured ones.
func (c *Config) LayerTable() (*arbor.LayerTable, error) {
	t := arbor.NewLayerTable()
	defs := lo.MapKeys(c.Layers, func(_ string, i int) arbor.Layer { return arbor.Layer(i) })
	if err := t.DefineAll(defs); err != nil {
		return nil, fmt.Errorf("config: layers: %w", err)
	}
	return t, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("config: invalid log level %q: %w", s, err)
	}
	return level, nil
}

// LoadFromFile reads path, expanding ${VAR} references before parsing.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var c Config
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &c, nil
}
