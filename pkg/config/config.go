package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete dumpmount configuration.
//
// This structure captures all configurable aspects of the tool including:
//   - Logging configuration
//   - Mount behavior (default NFS options)
//   - Attach journal settings
//   - Metrics textfile output
//
// Configuration sources (in order of precedence):
//  1. Environment variables (DUMPMOUNT_*)
//  2. Configuration file (YAML or TOML)
//  3. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Mount controls mount behavior
	Mount MountConfig `mapstructure:"mount" yaml:"mount"`

	// Journal controls the attach journal
	Journal JournalConfig `mapstructure:"journal" yaml:"journal"`

	// Metrics controls the metrics textfile output
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

// MountConfig controls mount behavior.
type MountConfig struct {
	// NFSOptions is the default option list for NFS mounts. Options are
	// joined with commas into a single option string at mount time, so
	// individual options must not contain commas.
	//
	// The default is ["nolock"]: in a crash-capture environment no lock
	// daemon is running, and without nolock the mount would hang waiting
	// for one.
	NFSOptions []string `mapstructure:"nfs_options" yaml:"nfs_options"`
}

// JournalConfig controls the attach journal.
//
// The journal records successful NFS attaches in a local BadgerDB so
// that status and cleanup commands can work across tool invocations.
// It is a convenience layer only; mount and resolve operations never
// depend on it.
type JournalConfig struct {
	// Enabled turns journal recording on
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// DBPath is the directory holding the journal database
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// Badger contains BadgerDB-specific tuning options
	Badger map[string]any `mapstructure:"badger" yaml:"badger,omitempty"`
}

// MetricsConfig controls the metrics textfile output.
//
// When enabled, mutating commands render the Prometheus registry into a
// textfile after completing, in the format read by node_exporter's
// textfile collector.
type MetricsConfig struct {
	// Enabled turns metrics collection and textfile output on
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// TextfilePath is the file the rendered metrics are written to
	TextfilePath string `mapstructure:"textfile_path" yaml:"textfile_path"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (DUMPMOUNT_*)
//  2. Configuration file
//  3. Default values
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Configure viper
	setupViper(v, configPath)

	// Read configuration file if it exists
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults for any missing values
	ApplyDefaults(&cfg)

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Set up environment variable support
	// Environment variables use DUMPMOUNT_ prefix and underscores
	// Example: DUMPMOUNT_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("DUMPMOUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Configure config file search
	if configPath != "" {
		// Use explicitly specified config file
		v.SetConfigFile(configPath)
	} else {
		// Use default location: $XDG_CONFIG_HOME/dumpmount/config.{yaml,toml}
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml") // Primary format
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		// Check if error is "config file not found"
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is acceptable - use defaults
			return nil
		}
		// An explicitly specified file that does not exist is also
		// acceptable; only parse and read failures are problems.
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	// Check XDG_CONFIG_HOME
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dumpmount")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		// If we can't get home dir, use current directory as last resort
		return "."
	}

	return filepath.Join(home, ".config", "dumpmount")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// ConfigExists checks if a config file exists at the default location.
func ConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for init command).
func GetConfigDir() string {
	return getConfigDir()
}
