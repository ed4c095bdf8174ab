// Package config provides the manifest loader for mason.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestLoader = (*FileManifestLoader)(nil)

// DefaultFilename is the manifest file looked up in the working directory.
const DefaultFilename = "mason.yaml"

// FileManifestLoader implements ports.ManifestLoader using a YAML file.
type FileManifestLoader struct {
	Filename string
}

// Load reads the manifest from the given working directory.
func (l *FileManifestLoader) Load(cwd string) (*domain.UnitGraph, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a manifest file and bulk-loads it into a UnitGraph. Because the
// units arrive in one batch, edges bypass the incremental cycle check of
// AddDependency; the loaded graph is validated as a whole instead, so a
// cyclic manifest is rejected here with the offending cycle attached.
func Load(path string) (*domain.UnitGraph, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	g := domain.NewUnitGraph()
	unitNames := make(map[string]bool, len(manifest.Units))

	// First pass: collect all unit names so dependency references can be
	// checked regardless of declaration order.
	for name := range manifest.Units {
		unitNames[name] = true
	}

	for name, dto := range manifest.Units {
		if name == "all" {
			return nil, zerr.With(zerr.New("unit name 'all' is reserved"), "unit", name)
		}

		for _, dep := range dto.DependsOn {
			if !unitNames[dep] {
				err := zerr.With(domain.ErrUnknownUnit, "unit", name)
				return nil, zerr.With(err, "dependency", dep)
			}
		}

		unit := &domain.Unit{
			Name:         domain.NewInternedString(name),
			SourceRoot:   domain.NewInternedString(dto.SourceRoot),
			Dependencies: internStrings(dto.DependsOn),
			Artifacts:    canonicalizeStrings(dto.Artifacts),
			Command:      dto.Cmd,
		}

		if err := g.AddUnit(unit); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

func internStrings(strs []string) []domain.InternedString {
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)

	unique := slices.Compact(sorted)
	res := make([]domain.InternedString, len(unique))
	for i, s := range unique {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
