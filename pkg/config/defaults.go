package config

import (
	"strings"
)

// Default paths used when the corresponding config values are unset.
const (
	// DefaultJournalPath is where the attach journal database lives
	DefaultJournalPath = "/var/lib/dumpmount/journal"

	// DefaultTextfilePath is where the metrics textfile is written,
	// matching node_exporter's conventional textfile collector directory
	DefaultTextfilePath = "/var/lib/node_exporter/textfile_collector/dumpmount.prom"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyMountDefaults(&cfg.Mount)
	applyJournalDefaults(&cfg.Journal)
	applyMetricsDefaults(&cfg.Metrics)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		// Tables and query results go to stdout, so logs default to stderr
		cfg.Output = "stderr"
	}
}

// applyMountDefaults sets mount defaults.
func applyMountDefaults(cfg *MountConfig) {
	// A nil slice means the key was absent; an explicitly configured
	// empty list means "mount with no options" and is preserved.
	if cfg.NFSOptions == nil {
		cfg.NFSOptions = []string{"nolock"}
	}
}

// applyJournalDefaults sets journal defaults.
func applyJournalDefaults(cfg *JournalConfig) {
	// Enabled defaults to false: recording attaches is opt-in

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultJournalPath
	}

	// Initialize map if nil
	if cfg.Badger == nil {
		cfg.Badger = make(map[string]any)
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	// Enabled defaults to false

	if cfg.TextfilePath == "" {
		cfg.TextfilePath = DefaultTextfilePath
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
