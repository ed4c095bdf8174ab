package ports

import "go.trai.ch/mason/internal/core/domain"

// ManifestLoader loads the unit manifest into a dependency graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest from the given working directory and returns
	// the unit graph. The graph is bulk-loaded and must still be validated.
	Load(cwd string) (*domain.UnitGraph, error)
}
