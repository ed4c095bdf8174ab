// Package shell provides the shell unit builder adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.UnitBuilder = (*Builder)(nil)

// Builder implements ports.UnitBuilder by running the unit's declared
// command with os/exec. Units without a command succeed immediately; the
// engine still tracks them for fingerprinting and ordering.
type Builder struct {
	logger ports.Logger
	root   string
}

// NewBuilder creates a new shell Builder resolving unit source roots against
// the given workspace root.
func NewBuilder(logger ports.Logger, root string) *Builder {
	return &Builder{
		logger: logger,
		root:   root,
	}
}

// BuildUnit runs the unit's command in its source root. Output streams to
// the telemetry vertex when one is attached to the context; the stderr tail
// is kept as diagnostics either way.
func (b *Builder) BuildUnit(ctx context.Context, unit *domain.Unit) (domain.UnitResult, error) {
	if len(unit.Command) == 0 {
		return domain.UnitResult{Success: true}, nil
	}

	name := unit.Command[0]
	args := unit.Command[1:]

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Env = os.Environ()

	if sourceRoot := unit.SourceRoot.String(); sourceRoot != "" {
		cmd.Dir = filepath.Join(b.root, sourceRoot)
	} else {
		cmd.Dir = b.root
	}

	var stderrTail bytes.Buffer
	var out io.Writer = io.Discard
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		out = vertex.Stdout()
	}
	cmd.Stdout = out
	cmd.Stderr = io.MultiWriter(out, &stderrTail)

	if err := cmd.Run(); err != nil {
		exitCode := -1 // Unknown or signal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		result := domain.UnitResult{
			Success:     false,
			Diagnostics: tailLines(stderrTail.String(), 20),
		}
		return result, zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return domain.UnitResult{Success: true}, nil
}

// tailLines returns at most n trailing non-empty lines of s.
func tailLines(s string, n int) []string {
	if s == "" {
		return nil
	}

	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return kept
}
