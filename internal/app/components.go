package app

import (
	"go.trai.ch/mason/internal/core/ports"
)

// Components bundles the application with the infrastructure the CLI layer
// needs direct access to.
type Components struct {
	App     *App
	Logger  ports.Logger
	Builder ports.UnitBuilder
	Store   ports.CacheStore
}

// NewComponents creates a Components bundle.
func NewComponents(
	a *App,
	logger ports.Logger,
	builder ports.UnitBuilder,
	store ports.CacheStore,
) *Components {
	return &Components{
		App:     a,
		Logger:  logger,
		Builder: builder,
		Store:   store,
	}
}
