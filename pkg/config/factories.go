package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/marmos91/dumpmount/pkg/journal"
)

// OpenJournal creates the attach journal based on configuration.
//
// This factory function decodes the BadgerDB-specific options from the
// journal.badger map and passes them to the journal's constructor. Only
// the options listed in badgerOptions are honored; unknown keys in the
// map are ignored.
//
// Parameters:
//   - cfg: Journal configuration
//
// Returns:
//   - *journal.Journal: Opened journal (caller must Close)
//   - error: Configuration or open error
func OpenJournal(cfg *JournalConfig) (*journal.Journal, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("journal is not enabled")
	}

	// Define the configuration struct for BadgerDB tuning
	type badgerOptions struct {
		// SyncWrites flushes every write to disk before acknowledging it
		SyncWrites bool `mapstructure:"sync_writes"`

		// InMemory keeps the whole journal in memory (useful for tests)
		InMemory bool `mapstructure:"in_memory"`
	}

	// Decode the options into the config struct
	var opts badgerOptions
	if err := mapstructure.Decode(cfg.Badger, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode journal badger options: %w", err)
	}

	j, err := journal.Open(journal.Options{
		Path:       cfg.DBPath,
		SyncWrites: opts.SyncWrites,
		InMemory:   opts.InMemory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal at %s: %w", cfg.DBPath, err)
	}

	return j, nil
}
