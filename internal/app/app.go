// Package app implements the application layer for mason: the in-process
// engine facade consumed by an external build driver.
package app

import (
	"context"
	"runtime"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/impact"
	"go.trai.ch/mason/internal/engine/orchestrator"
	"go.trai.ch/mason/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App is the engine facade. It owns the unit graph, either registered unit
// by unit through RegisterUnit or bulk-loaded from the manifest, and wires
// scheduling, impact analysis and orchestration together.
//
// The graph is treated as read-only for the duration of a Schedule or
// Execute call; App serializes its own mutations but an external driver
// must not interleave registration with an in-flight build.
type App struct {
	loader       ports.ManifestLoader
	scheduler    *scheduler.Scheduler
	analyzer     *impact.Analyzer
	orchestrator *orchestrator.Orchestrator
	store        ports.CacheStore
	logger       ports.Logger

	mu    sync.Mutex
	graph *domain.UnitGraph
}

// New creates a new App instance with an empty unit graph.
func New(
	loader ports.ManifestLoader,
	sched *scheduler.Scheduler,
	analyzer *impact.Analyzer,
	orch *orchestrator.Orchestrator,
	store ports.CacheStore,
	logger ports.Logger,
) *App {
	return &App{
		loader:       loader,
		scheduler:    sched,
		analyzer:     analyzer,
		orchestrator: orch,
		store:        store,
		logger:       logger,
		graph:        domain.NewUnitGraph(),
	}
}

// RegisterUnit adds a unit with its source root and declared dependencies.
func (a *App) RegisterUnit(name, sourceRoot string, dependencies []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	deps := make([]domain.InternedString, len(dependencies))
	for i, dep := range dependencies {
		deps[i] = domain.NewInternedString(dep)
	}

	return a.graph.AddUnit(&domain.Unit{
		Name:         domain.NewInternedString(name),
		SourceRoot:   domain.NewInternedString(sourceRoot),
		Dependencies: deps,
	})
}

// LoadManifest replaces the unit graph with the manifest in cwd.
func (a *App) LoadManifest(cwd string) error {
	graph, err := a.loader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	a.mu.Lock()
	a.graph = graph
	a.mu.Unlock()
	return nil
}

// Schedule computes the build plan for the current graph. On a cyclic graph
// it returns ErrCyclicGraph and no partial plan.
func (a *App) Schedule() (domain.BuildPlan, error) {
	return a.scheduler.Schedule(a.graph)
}

// PlanIncrementalBuild narrows a build to the units affected by the changed
// paths. A nil slice is the full-build sentinel and returns every unit; an
// empty non-nil slice is a no-op change set and returns nothing.
func (a *App) PlanIncrementalBuild(changedPaths []string) ([]string, error) {
	if err := a.graph.Validate(); err != nil {
		return nil, err
	}

	var affected []domain.InternedString
	if changedPaths == nil {
		affected = a.graph.Units()
	} else {
		affected = a.analyzer.AffectedUnits(a.graph, changedPaths)
	}

	names := make([]string, len(affected))
	for i, name := range affected {
		names[i] = name.String()
	}
	return names, nil
}

// Execute schedules the current graph and runs the affected units through
// the orchestrator with the given build callback. Build failures are
// recorded in the result, not returned as an error.
func (a *App) Execute(
	ctx context.Context,
	affected []string,
	builder ports.UnitBuilder,
	parallelism int,
) (domain.BuildResult, error) {
	plan, err := a.Schedule()
	if err != nil {
		return domain.BuildResult{}, err
	}

	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	interned := make([]domain.InternedString, len(affected))
	for i, name := range affected {
		interned[i] = domain.NewInternedString(name)
	}

	return a.orchestrator.Execute(ctx, a.graph, plan, interned, builder, parallelism)
}

// Run is the driver-level convenience: plan an incremental build for the
// changed paths (nil means full build) and execute it. It returns
// ErrBuildExecutionFailed when any unit failed.
func (a *App) Run(
	ctx context.Context,
	changedPaths []string,
	builder ports.UnitBuilder,
	parallelism int,
) (domain.BuildResult, error) {
	affected, err := a.PlanIncrementalBuild(changedPaths)
	if err != nil {
		return domain.BuildResult{}, err
	}

	result, err := a.Execute(ctx, affected, builder, parallelism)
	if err != nil {
		return result, err
	}

	if !result.OK() {
		return result, zerr.With(domain.ErrBuildExecutionFailed,
			"failed_units", len(result.FailedUnits))
	}
	return result, nil
}

// SaveCache writes the cache snapshot to disk.
func (a *App) SaveCache() error {
	return a.store.Save()
}

// LoadCache replaces the in-memory cache with the snapshot on disk.
func (a *App) LoadCache() error {
	return a.store.Load()
}

// InvalidateUnits drops the cache entries for the given units, forcing their
// next build to miss.
func (a *App) InvalidateUnits(names []string) error {
	for _, name := range names {
		if err := a.store.Clear(name); err != nil {
			return err
		}
	}
	return nil
}

// ClearCache drops every cache entry.
func (a *App) ClearCache() error {
	return a.store.ClearAll()
}
