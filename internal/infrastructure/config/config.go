package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/pmsuite/pathregistry/internal/shared/paths"
)

// EnvPrefix is the namespace for all suite environment variables.
const EnvPrefix = "PMSUITE"

// PathPrefix is the namespace for open-ended path overrides; the suffix
// after the prefix becomes the registry key.
const PathPrefix = EnvPrefix + "_PATH_"

// AppVersion is stamped into exported snapshots and reports.
const AppVersion = "2.0.0"

// Config holds all process configuration.
type Config struct {
	// Root overrides suite root discovery entirely when set.
	Root    string `envconfig:"PMSUITE_ROOT"`
	Logging LogConfig
	HTTP    HTTPConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"PMSUITE_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"PMSUITE_LOG_DEV" default:"false"`
}

// HTTPConfig holds the diagnostics panel server configuration.
type HTTPConfig struct {
	Port string `envconfig:"PMSUITE_HTTP_PORT" default:"8750"`
	Host string `envconfig:"PMSUITE_HTTP_HOST" default:"127.0.0.1"`
}

// PathOverrides maps the named operator-facing variables onto internal
// registry keys. Empty fields mean "not set".
type PathOverrides struct {
	DashboardFile    string `envconfig:"PMSUITE_DASHBOARD_FILE"`
	DashboardDataDir string `envconfig:"PMSUITE_DASHBOARD_DATA_DIR"`
	DBPath           string `envconfig:"PMSUITE_DB_PATH"`
	DataDir          string `envconfig:"PMSUITE_DATA_DIR"`
}

// Keyed returns the set overrides as registry key to value pairs.
func (p PathOverrides) Keyed() map[string]string {
	m := make(map[string]string, 4)
	if p.DashboardFile != "" {
		m[paths.DashboardFile] = p.DashboardFile
	}
	if p.DashboardDataDir != "" {
		m[paths.ExportsDir] = p.DashboardDataDir
	}
	if p.DBPath != "" {
		m[paths.DBPath] = p.DBPath
	}
	if p.DataDir != "" {
		m[paths.DataDir] = p.DataDir
	}
	return m
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadPathOverrides reads the fixed special-variable table.
func LoadPathOverrides() (PathOverrides, error) {
	var p PathOverrides
	if err := envconfig.Process("", &p); err != nil {
		return PathOverrides{}, fmt.Errorf("failed to load path overrides: %w", err)
	}
	return p, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{Level: "info", Development: false},
		HTTP:    HTTPConfig{Port: "8750", Host: "127.0.0.1"},
	}
}
