package ports

import "time"

// Metrics records engine-level counters. Implementations must be safe for
// concurrent use by stage workers.
type Metrics interface {
	// ObserveBuild records one finished unit build with its terminal status
	// ("succeeded" or "failed") and measured duration.
	ObserveBuild(status string, d time.Duration)

	// CacheHit records a fingerprint match that skipped a build.
	CacheHit()
}
