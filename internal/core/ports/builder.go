// Package ports defines the core interfaces for the engine.
package ports

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
)

// UnitBuilder performs the actual build work for a single unit. The engine
// treats it as an opaque, potentially slow external action; the orchestrator
// supplies the concurrency, so implementations need not be concurrency-aware
// beyond being safe to call from multiple goroutines for different units.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type UnitBuilder interface {
	// BuildUnit builds one unit. A non-nil error marks the unit as failed and
	// aborts the orchestration after the current stage drains.
	BuildUnit(ctx context.Context, unit *domain.Unit) (domain.UnitResult, error)
}

// BuildFunc adapts a plain function to the UnitBuilder interface.
type BuildFunc func(ctx context.Context, unit *domain.Unit) (domain.UnitResult, error)

// BuildUnit implements UnitBuilder.
func (f BuildFunc) BuildUnit(ctx context.Context, unit *domain.Unit) (domain.UnitResult, error) {
	return f(ctx, unit)
}
