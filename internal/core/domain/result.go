package domain

import "time"

// SkipReason explains why a unit was not attempted during orchestration.
type SkipReason string

const (
	// SkipUnaffected marks units outside the affected set; any cached result
	// is reused without invoking the build callback.
	SkipUnaffected SkipReason = "cached/unaffected"

	// SkipCacheHit marks affected units whose fingerprint matched the cache.
	SkipCacheHit SkipReason = "cache hit"

	// SkipUpstreamFailure marks units in stages that never started because an
	// earlier unit failed.
	SkipUpstreamFailure SkipReason = "aborted — upstream failure"
)

// UnitResult is the outcome of building a single unit. It is what the build
// callback returns and what the cache records as the last result.
type UnitResult struct {
	Success     bool          `json:"success"`
	Diagnostics []string      `json:"diagnostics,omitempty"`
	Duration    time.Duration `json:"duration_ns,omitzero"`
}

// SkippedUnit pairs a skipped unit with the reason it was not attempted.
type SkippedUnit struct {
	Name   InternedString
	Reason SkipReason
}

// FailedUnit pairs a failed unit with the underlying build error.
type FailedUnit struct {
	Name InternedString
	Err  error
}

// BuildResult is the outcome of one orchestration run. Skipped units were
// not attempted; the caller must not treat them as failures.
type BuildResult struct {
	SucceededUnits []InternedString
	FailedUnits    []FailedUnit
	SkippedUnits   []SkippedUnit
	Duration       time.Duration
}

// OK reports whether the run finished without failures.
func (r BuildResult) OK() bool {
	return len(r.FailedUnits) == 0
}
