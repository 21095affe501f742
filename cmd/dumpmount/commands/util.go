package commands

import (
	"fmt"
	"strings"

	"github.com/marmos91/dumpmount/internal/logger"
	mountproto "github.com/marmos91/dumpmount/internal/protocol/mount"
	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/marmos91/dumpmount/pkg/mounter"
	kmount "k8s.io/mount-utils"
)

// loadConfig loads the configuration honoring the persistent --config
// flag and initializes the logger from it. Every command calls this
// first so logging is configured before any real work happens.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := initLogger(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}

// initLogger configures the global logger from the configuration.
func initLogger(cfg *config.Config) error {
	return logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// exportLister queries the MOUNT service of an NFS host for its
// export list.
type exportLister struct{}

func (exportLister) Exports(host string) ([]string, error) {
	entries, err := mountproto.Exports(host)
	if err != nil {
		return nil, err
	}
	return mountproto.Directories(entries), nil
}

// newMounter builds the mounter shared by the mount related commands,
// wiring in the metrics collector selected by the configuration.
func newMounter(cfg *config.Config) *mounter.Mounter {
	collector := config.InitializeMetrics(cfg)
	return mounter.NewWithMounter(kmount.New(""), exportLister{}, collector)
}

// flushMetrics writes the metrics textfile if the configuration asks
// for one. Failures are logged rather than returned because the mount
// operation itself already succeeded or failed on its own terms.
func flushMetrics(cfg *config.Config) {
	if err := config.WriteMetricsTextfile(cfg); err != nil {
		logger.Warn("failed to write metrics textfile", logger.Err(err))
	}
}

// splitHostDir splits a "host:/dir" argument into host and directory.
func splitHostDir(arg string) (host, dir string, err error) {
	host, dir, ok := strings.Cut(arg, ":")
	if !ok || host == "" || dir == "" {
		return "", "", fmt.Errorf("invalid remote path %q: expected host:/directory", arg)
	}
	return host, dir, nil
}
