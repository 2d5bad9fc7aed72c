package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("SERVIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "SERVIO_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SERVIO_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SERVIO_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SERVIO_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is not an error; defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	if err := ensureDatabasePath(config); err != nil {
		return err
	}

	if err := validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *Manager) setDefaults() {
	defaults := Default()

	m.viper.SetDefault("database.path", "")
	m.viper.SetDefault("search.min_query_length", defaults.Search.MinQueryLength)
	m.viper.SetDefault("search.debounce_ms", defaults.Search.DebounceMs)
	m.viper.SetDefault("search.max_results", defaults.Search.MaxResults)
	m.viper.SetDefault("search.identity", "")
	m.viper.SetDefault("hint.timeout_ms", defaults.Hint.TimeoutMs)
	m.viper.SetDefault("events.recent_limit", defaults.Events.RecentLimit)
	m.viper.SetDefault("events.retention_days", defaults.Events.RetentionDays)
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

func ensureDatabasePath(cfg *Config) error {
	if cfg.Database.Path != "" {
		return nil
	}
	dataDir, err := GetDataDir()
	if err != nil {
		return fmt.Errorf("failed to determine data directory: %w", err)
	}
	cfg.Database.Path = filepath.Join(dataDir, "servio.db")
	return nil
}
