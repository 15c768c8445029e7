package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// StoreBackend selects the persistent store implementation.
type StoreBackend string

const (
	BackendJSON  StoreBackend = "json"
	BackendBbolt StoreBackend = "bbolt"
)

const defaultDebounceMs = 100

var defaultIgnore = []string{".git", "node_modules"}

// Config represents the complete filescope configuration.
type Config struct {
	Store StoreConfig `yaml:"store" toml:"store"`
	Log   LogConfig   `yaml:"log" toml:"log"`
	Watch WatchConfig `yaml:"watch" toml:"watch"`
}

// StoreConfig configures where scope state is persisted.
type StoreConfig struct {
	Backend StoreBackend `yaml:"backend" toml:"backend"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// WatchConfig configures the filesystem watcher.
type WatchConfig struct {
	// DebounceMs is the per-path coalescing window in milliseconds
	DebounceMs int `yaml:"debounce_ms" toml:"debounce_ms"`

	// Ignore lists glob patterns matched against path segments and
	// workspace-relative paths; matching directories are not watched
	Ignore []string `yaml:"ignore" toml:"ignore"`
}

// Default returns a Config with every field defaulted.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file. A missing file yields the
// defaults. Files ending in .toml are parsed as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.expandEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// expandEnv expands environment variables in free-form string fields.
func (c *Config) expandEnv() {
	for i, pattern := range c.Watch.Ignore {
		c.Watch.Ignore[i] = os.ExpandEnv(pattern)
	}
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) applyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = BackendJSON
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = defaultDebounceMs
	}
	if c.Watch.Ignore == nil {
		c.Watch.Ignore = append([]string{}, defaultIgnore...)
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendBbolt:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendJSON, BackendBbolt, c.Store.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}

	return nil
}

// Debounce returns the coalescing window as a duration.
func (c WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
