// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Refdata     RefdataConfig  `toml:"refdata"`
	Ingest      IngestConfig   `toml:"ingest"`
	Snapshot    SnapshotConfig `toml:"snapshot"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the data directory layout. The trade book lives under
// Path/trades and accepted CSV uploads are archived under Path/imports.
type StorageConfig struct {
	Path string `toml:"path"`
}

// RefdataConfig points at an optional price/sector quote file. When Path is
// empty the built-in table is used alone. ReloadSchedule is a cron spec for
// re-reading the file on a running server ("" disables the job).
type RefdataConfig struct {
	Path           string `toml:"path"`
	ReloadSchedule string `toml:"reload_schedule"`
}

// IngestConfig limits the CSV import surface.
type IngestConfig struct {
	MaxUploadBytes int64 `toml:"max_upload_bytes"`
	RateLimit      int   `toml:"rate_limit"` // import/recompute requests per minute
}

// SnapshotConfig tunes the debounced snapshot autosave.
type SnapshotConfig struct {
	QuietWindow string `toml:"quiet_window"`
	MaxWait     string `toml:"max_wait"`
}

// GetQuietWindow parses and returns the debounce quiet window
func (c *SnapshotConfig) GetQuietWindow() time.Duration {
	d, err := time.ParseDuration(c.QuietWindow)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// GetMaxWait parses and returns the debounce max wait
func (c *SnapshotConfig) GetMaxWait() time.Duration {
	d, err := time.ParseDuration(c.MaxWait)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Refdata: RefdataConfig{
			ReloadSchedule: "@every 15m",
		},
		Ingest: IngestConfig{
			MaxUploadBytes: 2 << 20, // 2 MiB of CSV is thousands of trades
			RateLimit:      30,
		},
		Snapshot: SnapshotConfig{
			QuietWindow: "2s",
			MaxWait:     "30s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FOLIO_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if path := os.Getenv("FOLIO_REFDATA_PATH"); path != "" {
		config.Refdata.Path = path
	}

	if sched := os.Getenv("FOLIO_REFDATA_SCHEDULE"); sched != "" {
		config.Refdata.ReloadSchedule = sched
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
