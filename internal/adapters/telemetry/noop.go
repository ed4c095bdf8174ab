// Package telemetry provides progress recording adapters.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.Telemetry = (*NoOp)(nil)

// NoOp is a telemetry implementation that records nothing. It is the default
// for tests and for quiet mode.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that discards everything.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &NoOpVertex{}
}

// EmitPlan does nothing.
func (t *NoOp) EmitPlan(_ context.Context, _ []string) {}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

// NoOpVertex is a vertex that discards everything.
type NoOpVertex struct{}

// Stdout returns a writer that discards its input.
func (v *NoOpVertex) Stdout() io.Writer { return io.Discard }

// Cached does nothing.
func (v *NoOpVertex) Cached() {}

// Complete does nothing.
func (v *NoOpVertex) Complete(_ error) {}
