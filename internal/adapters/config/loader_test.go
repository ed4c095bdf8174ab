package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/config"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return dir
}

func TestLoad_Success(t *testing.T) {
	dir := writeManifest(t, `
version: "1"
units:
  core:
    sourceRoot: core
    cmd: ["go", "build", "./..."]
  api:
    sourceRoot: api
    dependsOn: ["core"]
    artifacts: ["bin/api"]
`)

	loader := &config.FileManifestLoader{}
	g, err := loader.Load(dir)
	require.NoError(t, err)

	require.Equal(t, 2, g.UnitCount())

	api, ok := g.Unit(domain.NewInternedString("api"))
	require.True(t, ok)
	assert.Equal(t, "api", api.SourceRoot.String())
	require.Len(t, api.Dependencies, 1)
	assert.Equal(t, "core", api.Dependencies[0].String())

	deps, err := g.DependenciesOf(domain.NewInternedString("api"))
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "core", deps[0].String())

	core, ok := g.Unit(domain.NewInternedString("core"))
	require.True(t, ok)
	assert.Equal(t, []string{"go", "build", "./..."}, core.Command)
}

func TestLoad_UnknownDependency(t *testing.T) {
	dir := writeManifest(t, `
version: "1"
units:
  api:
    sourceRoot: api
    dependsOn: ["ghost"]
`)

	_, err := (&config.FileManifestLoader{}).Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownUnit))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "ghost", zErr.Metadata()["dependency"])
}

func TestLoad_CyclicManifest(t *testing.T) {
	// Bulk loading bypasses the incremental edge check; the cycle must be
	// caught by whole-graph validation instead.
	dir := writeManifest(t, `
version: "1"
units:
  a:
    dependsOn: ["b"]
  b:
    dependsOn: ["a"]
`)

	_, err := (&config.FileManifestLoader{}).Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCyclicGraph))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.NotEmpty(t, zErr.Metadata()["cycle"])
}

func TestLoad_ReservedUnitName(t *testing.T) {
	dir := writeManifest(t, `
version: "1"
units:
  all:
    sourceRoot: .
`)

	_, err := (&config.FileManifestLoader{}).Load(dir)
	assert.Error(t, err)
}

func TestLoad_ArtifactsCanonicalized(t *testing.T) {
	dir := writeManifest(t, `
version: "1"
units:
  core:
    artifacts: ["bin/b", "bin/a", "bin/b"]
`)

	g, err := (&config.FileManifestLoader{}).Load(dir)
	require.NoError(t, err)

	core, ok := g.Unit(domain.NewInternedString("core"))
	require.True(t, ok)
	require.Len(t, core.Artifacts, 2)
	assert.Equal(t, "bin/a", core.Artifacts[0].String())
	assert.Equal(t, "bin/b", core.Artifacts[1].String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := (&config.FileManifestLoader{}).Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := writeManifest(t, "units: [not a map")
	_, err := (&config.FileManifestLoader{}).Load(dir)
	assert.Error(t, err)
}
