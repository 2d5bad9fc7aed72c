// Package config loads and watches the servio configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration constants
const (
	defaultMinQueryLength = 2
	defaultDebounceMs     = 300
	defaultMaxResults     = 5
	defaultHintTimeoutMs  = 3000
	defaultEventLimit     = 50
	defaultRetentionDays  = 180
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	Hint     HintConfig     `mapstructure:"hint"`
	Events   EventsConfig   `mapstructure:"events"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig holds trend store settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SearchConfig holds suggestion controller settings.
type SearchConfig struct {
	MinQueryLength int    `mapstructure:"min_query_length"`
	DebounceMs     int    `mapstructure:"debounce_ms"`
	MaxResults     int    `mapstructure:"max_results"`
	Identity       string `mapstructure:"identity"`
}

// Debounce returns the debounce interval as a duration.
func (c SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// HintConfig holds transient hint settings.
type HintConfig struct {
	TimeoutMs int `mapstructure:"timeout_ms"`
}

// Timeout returns the hint auto-dismiss delay as a duration.
func (c HintConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// EventsConfig holds event store settings.
type EventsConfig struct {
	RecentLimit   int `mapstructure:"recent_limit"`
	RetentionDays int `mapstructure:"retention_days"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the default configuration values for servio.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			MinQueryLength: defaultMinQueryLength,
			DebounceMs:     defaultDebounceMs,
			MaxResults:     defaultMaxResults,
		},
		Hint: HintConfig{
			TimeoutMs: defaultHintTimeoutMs,
		},
		Events: EventsConfig{
			RecentLimit:   defaultEventLimit,
			RetentionDays: defaultRetentionDays,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// GetConfigDir returns the servio config directory per XDG.
func GetConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "servio"), nil
}

// GetDataDir returns the servio data directory per XDG.
func GetDataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "servio"), nil
}

// validate rejects configurations the controllers cannot run with.
func validate(cfg *Config) error {
	if cfg.Search.MinQueryLength < 1 {
		return fmt.Errorf("search.min_query_length must be >= 1, got %d", cfg.Search.MinQueryLength)
	}
	if cfg.Search.DebounceMs < 0 {
		return fmt.Errorf("search.debounce_ms must be >= 0, got %d", cfg.Search.DebounceMs)
	}
	if cfg.Search.MaxResults < 1 {
		return fmt.Errorf("search.max_results must be >= 1, got %d", cfg.Search.MaxResults)
	}
	if cfg.Hint.TimeoutMs < 1 {
		return fmt.Errorf("hint.timeout_ms must be >= 1, got %d", cfg.Hint.TimeoutMs)
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", cfg.Logging.Format)
	}
	return nil
}
