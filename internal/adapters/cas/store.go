// Package cas implements the persistent build cache store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// DefaultFilename is the cache snapshot file written into the workspace.
const DefaultFilename = ".mason-cache.json"

// Store implements ports.CacheStore using an in-memory map backed by a flat
// JSON snapshot file. Every Put writes through to disk, so the snapshot
// survives crashes without an explicit Save; Save and Load exist for drivers
// that manage the lifecycle themselves.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.CacheEntry
}

// NewStore creates a CacheStore backed by the file at the given path and
// loads any existing snapshot.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.CacheEntry),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves the entry for a unit. Returns nil, nil if not found.
func (s *Store) Get(unitName string) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[unitName]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put stores the entry and writes the snapshot through to disk.
func (s *Store) Put(entry domain.CacheEntry) error {
	s.mu.Lock()
	s.cache[entry.UnitName] = entry
	s.mu.Unlock()

	return s.Save()
}

// IsStale reports whether the unit must be rebuilt: no entry, or a
// fingerprint mismatch.
func (s *Store) IsStale(unitName, fingerprint string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[unitName]
	if !ok {
		return true
	}
	return entry.Fingerprint != fingerprint
}

// Clear removes the entry for one unit, if present.
func (s *Store) Clear(unitName string) error {
	s.mu.Lock()
	delete(s.cache, unitName)
	s.mu.Unlock()

	return s.Save()
}

// ClearAll removes every entry.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	s.cache = make(map[string]domain.CacheEntry)
	s.mu.Unlock()

	return s.Save()
}

// Load replaces the in-memory entries with the snapshot on disk. A missing
// or empty snapshot file yields an empty cache, not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]domain.CacheEntry)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read cache snapshot")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal cache snapshot")
	}

	return nil
}

// Save writes the snapshot of all entries to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache snapshot")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for cache snapshot")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write cache snapshot")
	}

	return nil
}
