package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
)

// CacheEntry is the per-unit record kept by the build cache. It is created on
// the first build of a unit, successful or not, and overwritten on every
// subsequent build. Entries are never evicted automatically.
type CacheEntry struct {
	UnitName    string     `json:"unit_name,omitzero"`
	Fingerprint string     `json:"fingerprint,omitzero"`
	LastResult  UnitResult `json:"last_result"`
	BuiltAt     time.Time  `json:"built_at,omitzero"`
}

// ComputeFingerprint derives a unit's fingerprint from its own source digest
// and the current fingerprints of its direct dependencies. Each dependency
// fingerprint already encodes that dependency's transitive history, so
// staleness propagates through a single level of lookup without re-walking
// the whole tree. Dependency fingerprints are sorted so the result does not
// depend on declaration order.
func ComputeFingerprint(sourceDigest string, depFingerprints []string) string {
	sorted := slices.Clone(depFingerprints)
	slices.Sort(sorted)

	h := xxhash.New()
	_, _ = h.WriteString(sourceDigest)
	_, _ = h.Write([]byte{0})
	for _, fp := range sorted {
		_, _ = h.WriteString(fp)
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
