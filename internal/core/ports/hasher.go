package ports

import "go.trai.ch/mason/internal/core/domain"

// SourceHasher computes content digests for a unit's sources.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type SourceHasher interface {
	// ComputeSourceDigest hashes the content under the unit's source root,
	// relative to the given workspace root.
	ComputeSourceDigest(unit *domain.Unit, root string) (string, error)
}
