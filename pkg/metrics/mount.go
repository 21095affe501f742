package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MountMetrics provides observability for mount and resolution operations.
//
// This interface is optional - if metrics are disabled, a no-op
// implementation is used with zero overhead.
type MountMetrics interface {
	// RecordExportQuery records an export-list query against an NFS host.
	//
	// Parameters:
	//   - host: the NFS server that was queried
	//   - exports: number of exports returned (0 on failure)
	//   - err: error if the query failed, nil if successful
	RecordExportQuery(host string, exports int, err error)

	// RecordMount records a mount attempt and its outcome.
	//
	// Parameters:
	//   - fstype: filesystem type passed to the mount ("auto" when empty)
	//   - err: error if the mount failed, nil if successful
	RecordMount(fstype string, err error)

	// RecordUnmount records an unmount attempt and its outcome.
	RecordUnmount(err error)

	// RecordResolution records a path canonicalization with its duration.
	//
	// Parameters:
	//   - operation: "canonicalize" or "canonicalizeUnderRoot"
	//   - duration: time taken to resolve
	//   - err: error if resolution failed, nil if successful
	RecordResolution(operation string, duration time.Duration, err error)
}

// mountMetrics is the Prometheus implementation of MountMetrics.
type mountMetrics struct {
	exportQueriesTotal *prometheus.CounterVec
	exportsDiscovered  *prometheus.GaugeVec
	mountsTotal        *prometheus.CounterVec
	unmountsTotal      *prometheus.CounterVec
	resolutionsTotal   *prometheus.CounterVec
	resolutionDuration *prometheus.HistogramVec
}

// NewMountMetrics creates a new Prometheus-backed MountMetrics instance.
//
// Returns a no-op implementation if metrics are not enabled (InitRegistry
// not called).
func NewMountMetrics() MountMetrics {
	if !IsEnabled() {
		return &noopMountMetrics{}
	}

	reg := GetRegistry()

	return &mountMetrics{
		exportQueriesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dumpmount_export_queries_total",
				Help: "Total number of NFS export-list queries by host and status",
			},
			[]string{"host", "status"},
		),
		exportsDiscovered: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dumpmount_exports_discovered",
				Help: "Number of exports the last query returned per host",
			},
			[]string{"host"},
		),
		mountsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dumpmount_mounts_total",
				Help: "Total number of mount attempts by filesystem type and status",
			},
			[]string{"fstype", "status"},
		),
		unmountsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dumpmount_unmounts_total",
				Help: "Total number of unmount attempts by status",
			},
			[]string{"status"},
		),
		resolutionsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dumpmount_resolutions_total",
				Help: "Total number of path resolutions by operation and status",
			},
			[]string{"operation", "status"},
		),
		resolutionDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "dumpmount_resolution_duration_seconds",
				Help: "Duration of path resolutions in seconds",
				Buckets: []float64{
					0.0001, // 0.1ms
					0.001,  // 1ms
					0.01,   // 10ms
					0.1,    // 100ms
					1.0,    // 1s
				},
			},
			[]string{"operation"},
		),
	}
}

// statusLabel converts an error outcome into the status label value
func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *mountMetrics) RecordExportQuery(host string, exports int, err error) {
	m.exportQueriesTotal.WithLabelValues(host, statusLabel(err)).Inc()
	if err == nil {
		m.exportsDiscovered.WithLabelValues(host).Set(float64(exports))
	}
}

func (m *mountMetrics) RecordMount(fstype string, err error) {
	if fstype == "" {
		fstype = "auto"
	}
	m.mountsTotal.WithLabelValues(fstype, statusLabel(err)).Inc()
}

func (m *mountMetrics) RecordUnmount(err error) {
	m.unmountsTotal.WithLabelValues(statusLabel(err)).Inc()
}

func (m *mountMetrics) RecordResolution(operation string, duration time.Duration, err error) {
	m.resolutionsTotal.WithLabelValues(operation, statusLabel(err)).Inc()
	if err == nil {
		m.resolutionDuration.WithLabelValues(operation).Observe(duration.Seconds())
	}
}

// noopMountMetrics implements MountMetrics with no-op methods
type noopMountMetrics struct{}

func (n *noopMountMetrics) RecordExportQuery(host string, exports int, err error) {}

func (n *noopMountMetrics) RecordMount(fstype string, err error) {}

func (n *noopMountMetrics) RecordUnmount(err error) {}

func (n *noopMountMetrics) RecordResolution(operation string, duration time.Duration, err error) {}

// NewNoopMountMetrics returns a MountMetrics that records nothing.
// Useful for tests and for components constructed before the registry.
func NewNoopMountMetrics() MountMetrics {
	return &noopMountMetrics{}
}
