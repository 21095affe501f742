package config

import (
	"github.com/marmos91/dumpmount/pkg/metrics"
)

// InitializeMetrics creates the metrics collector based on configuration.
//
// If metrics are enabled in the configuration:
//   - Initializes the global Prometheus registry
//   - Creates a Prometheus-backed MountMetrics instance
//
// If metrics are disabled:
//   - Returns a no-op implementation (zero overhead)
//
// Parameters:
//   - cfg: The complete dumpmount configuration
//
// Returns:
//   - metrics.MountMetrics: Metrics collector (never nil)
func InitializeMetrics(cfg *Config) metrics.MountMetrics {
	if !cfg.Metrics.Enabled {
		// Metrics disabled - return no-op implementation
		return metrics.NewNoopMountMetrics()
	}

	// Initialize global Prometheus registry
	metrics.InitRegistry()

	return metrics.NewMountMetrics()
}

// WriteMetricsTextfile renders the registry into the configured textfile.
//
// Does nothing when metrics are disabled, so commands can call it
// unconditionally after finishing their work.
func WriteMetricsTextfile(cfg *Config) error {
	if !cfg.Metrics.Enabled {
		return nil
	}

	return metrics.WriteTextfile(cfg.Metrics.TextfilePath)
}
