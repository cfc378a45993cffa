// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package store persists the view-state snapshot to BadgerDB.
//
// The whole PersistedDatabase is serialized as one JSON document under
// a single key and read-modify-written as one unit. Failure policy
// follows the fail-soft contract: a missing, corrupt, or unreadable
// snapshot degrades to defaults and a failed write is logged and
// dropped - no storage failure ever propagates to the caller.
package store

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/theatrum/internal/config"
	"github.com/tomtom215/theatrum/internal/logging"
	"github.com/tomtom215/theatrum/internal/metrics"
	"github.com/tomtom215/theatrum/internal/models"
)

// Storage keys. snapshotKey holds the full JSON snapshot;
// legacyWatchTimeKey holds a bare integer from format variants that
// persisted watch time separately, read only when the snapshot carries
// no watch-time value.
const (
	snapshotKey        = "viewstate:snapshot"
	legacyWatchTimeKey = "viewstate:watchtime"
)

// Store is the BadgerDB-backed persisted state store.
type Store struct {
	db     *badger.DB
	ownsDB bool
}

// Open opens (or creates) the BadgerDB behind the store.
func Open(cfg config.StorageConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for snapshots: %w", err)
	}

	return &Store{db: db, ownsDB: true}, nil
}

// NewWithDB wraps an already-open BadgerDB. The caller keeps ownership
// of the database lifecycle.
func NewWithDB(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying BadgerDB if this store opened it.
func (s *Store) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// snapshotDoc mirrors models.PersistedDatabase with a pointer
// watch-time field, so an absent value is distinguishable from zero
// when deciding whether to consult the legacy slot.
type snapshotDoc struct {
	Auth             models.AuthState             `json:"auth"`
	Profiles         map[int]*models.ProfileState `json:"profiles"`
	WatchTimeSeconds *int64                       `json:"watchTimeSeconds"`
}

// Load reads the snapshot. It never fails: a missing, corrupt, or
// schema-invalid snapshot is replaced with a default-initialized
// database and the condition is logged.
func (s *Store) Load() *models.PersistedDatabase {
	var raw []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append(raw, val...)
			return nil
		})
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		logging.Debug().Msg("No persisted snapshot, starting from defaults")
		return s.withLegacyWatchTime(models.NewPersistedDatabase())
	case err != nil:
		logging.Warn().Err(err).Msg("Snapshot read failed, falling back to defaults")
		metrics.SnapshotLoadFallbacks.Inc()
		return s.withLegacyWatchTime(models.NewPersistedDatabase())
	}

	var doc snapshotDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		logging.Warn().Err(err).Msg("Snapshot is corrupt, falling back to defaults")
		metrics.SnapshotLoadFallbacks.Inc()
		return s.withLegacyWatchTime(models.NewPersistedDatabase())
	}

	db := &models.PersistedDatabase{
		Auth:     doc.Auth,
		Profiles: doc.Profiles,
	}
	if doc.WatchTimeSeconds != nil {
		db.WatchTimeSeconds = *doc.WatchTimeSeconds
	}

	if !db.Normalize() {
		logging.Warn().Msg("Snapshot failed schema validation, falling back to defaults")
		metrics.SnapshotLoadFallbacks.Inc()
		return s.withLegacyWatchTime(models.NewPersistedDatabase())
	}

	// A valid snapshot without a watch-time value predates the unified
	// format; backfill from the legacy slot.
	if doc.WatchTimeSeconds == nil {
		return s.withLegacyWatchTime(db)
	}
	return db
}

// withLegacyWatchTime backfills db.WatchTimeSeconds from the legacy
// plain-text slot, if one exists and parses.
func (s *Store) withLegacyWatchTime(db *models.PersistedDatabase) *models.PersistedDatabase {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(legacyWatchTimeKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			seconds, perr := strconv.ParseInt(string(val), 10, 64)
			if perr != nil || seconds < 0 {
				return fmt.Errorf("parse legacy watch time %q: %w", string(val), perr)
			}
			db.WatchTimeSeconds = seconds
			return nil
		})
	})

	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		logging.Warn().Err(err).Msg("Legacy watch-time slot unreadable, keeping zero")
	}
	return db
}

// Save serializes db and overwrites the snapshot slot. On failure the
// error is logged and the write is dropped - the caller is never
// interrupted by a persistence failure.
func (s *Store) Save(db *models.PersistedDatabase) {
	if err := s.save(db); err != nil {
		logging.Error().Err(err).Msg("Snapshot save failed, state not persisted")
		metrics.SnapshotSaveErrors.Inc()
		return
	}
	metrics.SnapshotSaves.Inc()
}

func (s *Store) save(db *models.PersistedDatabase) error {
	data, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(snapshotKey), data); err != nil {
			return fmt.Errorf("set snapshot: %w", err)
		}
		// Keep the legacy slot in step so earlier format readers see
		// a consistent value.
		wt := strconv.FormatInt(db.WatchTimeSeconds, 10)
		if err := txn.Set([]byte(legacyWatchTimeKey), []byte(wt)); err != nil {
			return fmt.Errorf("set legacy watch time: %w", err)
		}
		return nil
	})
}

// FlushWatchTime best-effort persists just the watch-time counter by
// read-modify-writing the snapshot. Triggered on the shutdown path and
// by the periodic background flush; same failure policy as Save.
func (s *Store) FlushWatchTime(seconds int64) {
	db := s.Load()
	db.WatchTimeSeconds = seconds
	s.Save(db)
}
