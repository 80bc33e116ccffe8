// Package config provides configuration loading for wifimon.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/infra"
)

// DefaultPath is where the config file is looked up when none is given.
const DefaultPath = "~/.wifimon/config.yaml"

// Config holds the application configuration.
type Config struct {
	// Country is the ISO-3166 alpha-2 code used for channel rules
	Country string `yaml:"country"`

	Scan     ScanConfig     `yaml:"scan"`
	Platform PlatformConfig `yaml:"platform"`
	Rules    RulesConfig    `yaml:"rules"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ScanConfig holds snapshot polling settings.
type ScanConfig struct {
	// Source is the snapshot file written by the external scanner
	Source string `yaml:"source"`

	// Interval is how often the snapshot is re-read
	Interval time.Duration `yaml:"interval"`

	// CacheSize is how many scans are averaged per network
	CacheSize int `yaml:"cache_size"`

	// Interface is the local interface used when a snapshot has no lease
	Interface string `yaml:"interface"`
}

// PlatformConfig describes the scanning platform.
type PlatformConfig struct {
	// StandardReporting forces the Wi-Fi standard capability on or off.
	// Unset means it is derived from APILevel.
	StandardReporting *bool `yaml:"standard_reporting,omitempty"`

	// APILevel is assumed until a snapshot reports one
	APILevel int `yaml:"api_level"`
}

// RulesConfig points at extra regulatory rules.
type RulesConfig struct {
	File string `yaml:"file"`
}

// MetricsConfig holds Prometheus textfile settings.
type MetricsConfig struct {
	// Textfile is written for the node_exporter textfile collector; empty disables it
	Textfile string `yaml:"textfile"`

	// Interval is how often the textfile is rewritten
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Format is the log format (json, console)
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Country: "US",
		Scan: ScanConfig{
			Source:    "~/.wifimon/snapshot.json",
			Interval:  5 * time.Second,
			CacheSize: infra.DefaultCacheSize,
			Interface: "wlan0",
		},
		Metrics: MetricsConfig{
			Interval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// If the path is empty or the file doesn't exist, it returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(infra.NewFileSystemManager().ExpandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// Environment variables override values from the config file.
// Unparseable numbers and durations are ignored.
func LoadConfigFromEnv(cfg *Config) {
	if country := os.Getenv("WIFIMON_COUNTRY"); country != "" {
		cfg.Country = country
	}

	if source := os.Getenv("WIFIMON_SCAN_SOURCE"); source != "" {
		cfg.Scan.Source = source
	}

	if interval := os.Getenv("WIFIMON_SCAN_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.Scan.Interval = d
		}
	}

	if size := os.Getenv("WIFIMON_CACHE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			cfg.Scan.CacheSize = n
		}
	}

	if iface := os.Getenv("WIFIMON_INTERFACE"); iface != "" {
		cfg.Scan.Interface = iface
	}

	if rules := os.Getenv("WIFIMON_RULES_FILE"); rules != "" {
		cfg.Rules.File = rules
	}

	if textfile := os.Getenv("WIFIMON_METRICS_TEXTFILE"); textfile != "" {
		cfg.Metrics.Textfile = textfile
	}

	if level := os.Getenv("WIFIMON_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Scan.Interval <= 0 {
		return fmt.Errorf("scan interval must be positive, got %s", c.Scan.Interval)
	}
	if c.Metrics.Interval <= 0 {
		return fmt.Errorf("metrics interval must be positive, got %s", c.Metrics.Interval)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}
