package ports

import "go.trai.ch/mason/internal/core/domain"

// CacheStore holds one CacheEntry per unit. Entries are immutable once
// written and replaced atomically, so concurrent readers of other units'
// entries are safe while the orchestrator writes between stages. The store
// never evicts; capacity management is the caller's concern via Clear.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Get retrieves the entry for a unit. Returns nil, nil if not found.
	Get(unitName string) (*domain.CacheEntry, error)

	// Put stores the entry, overwriting any previous one.
	Put(entry domain.CacheEntry) error

	// IsStale reports whether the unit must be rebuilt: true when no entry
	// exists or the stored fingerprint differs from the current one.
	IsStale(unitName, fingerprint string) bool

	// Clear removes the entry for one unit, if present.
	Clear(unitName string) error

	// ClearAll removes every entry.
	ClearAll() error

	// Save writes a snapshot of all entries to the backing file.
	Save() error

	// Load replaces the in-memory entries with the backing file's snapshot.
	Load() error
}
