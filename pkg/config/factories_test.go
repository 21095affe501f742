package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marmos91/dumpmount/pkg/metrics"
)

func TestOpenJournal_Disabled(t *testing.T) {
	cfg := &JournalConfig{Enabled: false}

	_, err := OpenJournal(cfg)
	if err == nil {
		t.Fatal("Expected error opening disabled journal, got nil")
	}
	if !strings.Contains(err.Error(), "not enabled") {
		t.Errorf("Expected 'not enabled' error, got: %v", err)
	}
}

func TestOpenJournal_InMemory(t *testing.T) {
	cfg := &JournalConfig{
		Enabled: true,
		DBPath:  filepath.Join(t.TempDir(), "journal"),
		Badger:  map[string]any{"in_memory": true},
	}

	j, err := OpenJournal(cfg)
	if err != nil {
		t.Fatalf("Failed to open in-memory journal: %v", err)
	}
	defer func() { _ = j.Close() }()

	// In-memory journals leave no database directory behind
	if _, err := os.Stat(cfg.DBPath); !os.IsNotExist(err) {
		t.Error("Expected no on-disk database for in-memory journal")
	}
}

func TestOpenJournal_OnDisk(t *testing.T) {
	cfg := &JournalConfig{
		Enabled: true,
		DBPath:  filepath.Join(t.TempDir(), "journal"),
	}

	j, err := OpenJournal(cfg)
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	defer func() { _ = j.Close() }()

	if _, err := os.Stat(cfg.DBPath); err != nil {
		t.Errorf("Expected database directory to exist: %v", err)
	}
}

func TestOpenJournal_BadBadgerOptions(t *testing.T) {
	cfg := &JournalConfig{
		Enabled: true,
		DBPath:  filepath.Join(t.TempDir(), "journal"),
		Badger:  map[string]any{"sync_writes": "definitely"},
	}

	_, err := OpenJournal(cfg)
	if err == nil {
		t.Fatal("Expected decode error for non-bool sync_writes, got nil")
	}
	if !strings.Contains(err.Error(), "badger options") {
		t.Errorf("Expected badger options error, got: %v", err)
	}
}

// The two metrics tests share the process-global registry: the disabled
// case must run before the enabled case initializes it.

func TestInitializeMetrics_Disabled(t *testing.T) {
	cfg := GetDefaultConfig()

	collector := InitializeMetrics(cfg)
	if collector == nil {
		t.Fatal("Expected a no-op collector, got nil")
	}
	if metrics.IsEnabled() {
		t.Error("Registry should not be initialized for disabled metrics")
	}

	// No-op collectors swallow recordings without a registry
	collector.RecordMount("nfs", nil)
	collector.RecordUnmount(nil)
}

func TestInitializeMetrics_Enabled(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.TextfilePath = filepath.Join(t.TempDir(), "dumpmount.prom")

	collector := InitializeMetrics(cfg)
	if collector == nil {
		t.Fatal("Expected a collector, got nil")
	}
	if !metrics.IsEnabled() {
		t.Error("Registry should be initialized for enabled metrics")
	}

	collector.RecordMount("nfs", nil)

	if err := WriteMetricsTextfile(cfg); err != nil {
		t.Fatalf("Failed to write textfile: %v", err)
	}

	content, err := os.ReadFile(cfg.Metrics.TextfilePath)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	if !strings.Contains(string(content), "dumpmount_mounts_total") {
		t.Error("Expected textfile to contain mount counter")
	}
}

func TestWriteMetricsTextfile_DisabledIsNoop(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Metrics.TextfilePath = filepath.Join(t.TempDir(), "dumpmount.prom")

	if err := WriteMetricsTextfile(cfg); err != nil {
		t.Fatalf("Expected nil error for disabled metrics, got: %v", err)
	}
	if _, err := os.Stat(cfg.Metrics.TextfilePath); !os.IsNotExist(err) {
		t.Error("Expected no textfile for disabled metrics")
	}
}
