// Package journal persists a record of successful NFS attaches in a
// local BadgerDB, so that status and cleanup commands can reason about
// mounts made by earlier invocations of the tool.
//
// The journal is a convenience layer for the command line: mount and
// path resolution never read it, and a missing or stale journal never
// affects their behavior. Every record can be reconstructed by hand
// from the live mount table if the database is lost.
package journal

import (
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no record exists for a mountpoint.
var ErrNotFound = errors.New("journal: record not found")

// Options configures the journal database.
type Options struct {
	// Path is the directory where BadgerDB stores its files.
	// BadgerDB creates the directory if it does not exist.
	Path string

	// SyncWrites flushes every write to disk before acknowledging it
	SyncWrites bool

	// InMemory keeps the whole journal in memory, ignoring Path.
	// Used by tests; an in-memory journal is lost on Close.
	InMemory bool
}

// Journal is a BadgerDB-backed attach record store.
//
// Safe for concurrent use; BadgerDB provides transaction isolation.
type Journal struct {
	db *badger.DB
}

// Open opens the journal database, creating it if needed.
//
// The returned journal must be closed after use.
func Open(opts Options) (*Journal, error) {
	var badgerOpts badger.Options
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	// Journal records are tiny and written once per attach, so reduce
	// BadgerDB to its quietest, simplest configuration
	badgerOpts = badgerOpts.WithLoggingLevel(badger.WARNING)
	badgerOpts = badgerOpts.WithCompression(options.None)
	badgerOpts = badgerOpts.WithSyncWrites(opts.SyncWrites)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the journal database and releases all resources.
// After calling Close, the journal must not be used.
func (j *Journal) Close() error {
	if err := j.db.Close(); err != nil {
		return fmt.Errorf("failed to close journal database: %w", err)
	}

	return nil
}

// Record stores an attach record, keyed by its mountpoint. A record
// already stored for the same mountpoint is replaced.
//
// A zero ID is assigned a fresh UUID and a zero AttachedAt is set to
// the current time, so callers only fill in what they know.
func (j *Journal) Record(rec *AttachRecord) error {
	if rec.Mountpoint == "" {
		return fmt.Errorf("journal: record has no mountpoint")
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.AttachedAt.IsZero() {
		rec.AttachedAt = time.Now().UTC()
	}

	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyAttach(rec.Mountpoint), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store attach record for %s: %w", rec.Mountpoint, err)
	}

	return nil
}

// Get returns the attach record for a mountpoint, or ErrNotFound.
func (j *Journal) Get(mountpoint string) (*AttachRecord, error) {
	var rec *AttachRecord

	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyAttach(mountpoint))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			rec, err = decodeRecord(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// List returns all attach records, ordered by mountpoint.
func (j *Journal) List() ([]AttachRecord, error) {
	var records []AttachRecord

	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = keyAttachPrefix()

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				rec, err := decodeRecord(val)
				if err != nil {
					return err
				}
				records = append(records, *rec)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attach records: %w", err)
	}

	return records, nil
}

// Remove deletes the attach record for a mountpoint.
// Returns ErrNotFound when no record exists.
func (j *Journal) Remove(mountpoint string) error {
	err := j.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(keyAttach(mountpoint))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(keyAttach(mountpoint))
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to remove attach record for %s: %w", mountpoint, err)
	}

	return nil
}
