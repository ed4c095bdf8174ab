package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(originalWd) }()

	// No subcommand prints help and exits cleanly.
	os.Args = []string{"mason"}
	assert.Equal(t, 0, run())

	// Building without a manifest fails.
	os.Args = []string{"mason", "build"}
	assert.Equal(t, 1, run())

	// A valid manifest builds.
	manifest := `
version: "1"
units:
  hello:
    cmd: ["true"]
`
	require.NoError(t, os.WriteFile("mason.yaml", []byte(manifest), 0o600))
	os.Args = []string{"mason", "build"}
	assert.Equal(t, 0, run())
}
