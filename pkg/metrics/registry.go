// Package metrics provides Prometheus metrics collection for dumpmount.
//
// All metrics are optional - if not initialized, components use no-op
// implementations that have zero overhead. This allows the tool to run
// with or without metrics collection enabled.
//
// dumpmount is a one-shot command, so there is no HTTP endpoint to
// scrape. Instead, WriteTextfile renders the registry in the text
// exposition format for the node_exporter textfile collector.
//
// Usage:
//
//	// Initialize global registry (typically in main.go)
//	metrics.InitRegistry()
//
//	// Create metrics instances for components
//	mountMetrics := metrics.NewMountMetrics()
//
//	// After the work is done, hand the counters to node_exporter
//	metrics.WriteTextfile("/var/lib/node_exporter/textfile/dumpmount.prom")
package metrics

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var (
	// registry is the global Prometheus registry for all dumpmount metrics
	// Protected by registryOnce for write-once, read-many pattern
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// InitRegistry initializes the global Prometheus registry.
//
// This must be called before creating any metrics instances. It's safe to
// call multiple times - subsequent calls are ignored.
//
// If not called, GetRegistry() will return nil and all metrics
// constructors will return no-op implementations.
//
// Thread safety:
// sync.Once provides the necessary memory barriers to ensure the registry
// write is visible to all subsequent reads.
func InitRegistry() {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
	})
}

// GetRegistry returns the global Prometheus registry.
//
// Returns nil if InitRegistry() has not been called, indicating metrics
// are disabled.
func GetRegistry() *prometheus.Registry {
	return registry
}

// IsEnabled returns true if metrics collection is enabled.
//
// Metrics are enabled if InitRegistry() has been called.
func IsEnabled() bool {
	return GetRegistry() != nil
}

// WriteTextfile renders every registered metric in the Prometheus text
// exposition format and atomically replaces the file at path, the handoff
// convention of the node_exporter textfile collector.
//
// A no-op when metrics are disabled.
func WriteTextfile(path string) error {
	if !IsEnabled() {
		return nil
	}

	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return fmt.Errorf("encode metric family %s: %w", family.GetName(), err)
		}
	}

	// Write-then-rename so the collector never reads a half-written file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace metrics textfile: %w", err)
	}

	return nil
}
