package shell_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/shell"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

type testLogger struct{}

func (testLogger) Info(string) {}
func (testLogger) Warn(string) {}
func (testLogger) Error(error) {}

func unit(name string, command ...string) *domain.Unit {
	return &domain.Unit{
		Name:    domain.NewInternedString(name),
		Command: command,
	}
}

func TestBuildUnit_NoCommandSucceeds(t *testing.T) {
	b := shell.NewBuilder(testLogger{}, t.TempDir())

	result, err := b.BuildUnit(context.Background(), unit("core"))
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestBuildUnit_Success(t *testing.T) {
	b := shell.NewBuilder(testLogger{}, t.TempDir())

	result, err := b.BuildUnit(context.Background(), unit("core", "sh", "-c", "exit 0"))
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestBuildUnit_FailureKeepsStderrTail(t *testing.T) {
	b := shell.NewBuilder(testLogger{}, t.TempDir())

	result, err := b.BuildUnit(context.Background(),
		unit("core", "sh", "-c", "echo compile error >&2; exit 3"))
	require.Error(t, err)
	assert.False(t, result.Success)
	require.NotEmpty(t, result.Diagnostics)
	assert.Contains(t, result.Diagnostics[len(result.Diagnostics)-1], "compile error")

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
}

func TestBuildUnit_RunsInSourceRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "marker.txt"), nil, 0o600))

	b := shell.NewBuilder(testLogger{}, root)

	u := unit("core", "sh", "-c", "test -f marker.txt")
	u.SourceRoot = domain.NewInternedString("sub")

	result, err := b.BuildUnit(context.Background(), u)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestBuildUnit_ContextCancellation(t *testing.T) {
	b := shell.NewBuilder(testLogger{}, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := b.BuildUnit(ctx, unit("core", "sleep", "10"))
	require.Error(t, err)
	assert.False(t, result.Success)
}
