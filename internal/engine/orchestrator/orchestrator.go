// Package orchestrator executes build plans stage by stage.
package orchestrator

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs the units of a build plan with barrier-staged
// concurrency: units within a stage build on parallel workers, stages run
// strictly in sequence. A unit build failure aborts the run after the
// current stage drains; no new stage is started and there is no mid-stage
// cancellation of work already dispatched.
type Orchestrator struct {
	hasher    ports.SourceHasher
	store     ports.CacheStore
	telemetry ports.Telemetry
	metrics   ports.Metrics
	logger    ports.Logger

	clock clockwork.Clock
	root  string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// WithRoot sets the workspace root against which source roots are resolved.
func WithRoot(root string) Option {
	return func(o *Orchestrator) { o.root = root }
}

// New creates a new Orchestrator.
func New(
	hasher ports.SourceHasher,
	store ports.CacheStore,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		hasher:    hasher,
		store:     store,
		telemetry: telemetry,
		metrics:   metrics,
		logger:    logger,
		clock:     clockwork.NewRealClock(),
		root:      ".",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// unitOutcome is the write-once record a stage worker hands back to the
// orchestrator. Workers never touch the cache; all cache writes happen
// single-threaded between stages.
type unitOutcome struct {
	name        domain.InternedString
	cacheHit    bool
	fingerprint string
	result      domain.UnitResult
	err         error
}

// Execute runs the plan restricted to the affected units with the given
// per-stage parallelism (zero means unbounded). Units outside the affected
// set are recorded as skipped with their cached result left intact. Cache
// writes for stage N are fully committed before any unit of stage N+1
// starts, so a dependent never observes a stale dependency fingerprint.
func (o *Orchestrator) Execute(
	ctx context.Context,
	graph *domain.UnitGraph,
	plan domain.BuildPlan,
	affected []domain.InternedString,
	builder ports.UnitBuilder,
	parallelism int,
) (domain.BuildResult, error) {
	start := o.clock.Now()
	result := domain.BuildResult{}

	keep := make(map[domain.InternedString]struct{}, len(affected))
	for _, name := range affected {
		keep[name] = struct{}{}
	}

	for _, name := range plan.Order {
		if _, ok := keep[name]; !ok {
			result.SkippedUnits = append(result.SkippedUnits, domain.SkippedUnit{
				Name:   name,
				Reason: domain.SkipUnaffected,
			})
		}
	}

	narrowed := plan.Restrict(keep)

	planned := make([]string, len(narrowed.Order))
	for i, name := range narrowed.Order {
		planned[i] = name.String()
	}
	o.telemetry.EmitPlan(ctx, planned)

	aborted := false
	for _, stage := range narrowed.Stages {
		if aborted {
			for _, name := range stage {
				result.SkippedUnits = append(result.SkippedUnits, domain.SkippedUnit{
					Name:   name,
					Reason: domain.SkipUpstreamFailure,
				})
			}
			continue
		}

		outcomes := o.runStage(ctx, graph, stage, builder, parallelism)

		if err := o.commitStage(outcomes, &result); err != nil {
			return result, err
		}
		if !result.OK() {
			aborted = true
		}
	}

	result.Duration = o.clock.Since(start)
	return result, nil
}

// runStage dispatches one worker per unit and waits for the whole stage at
// the barrier. Workers never return an error to the group; a failure must
// not cancel siblings already running in the same stage.
func (o *Orchestrator) runStage(
	ctx context.Context,
	graph *domain.UnitGraph,
	stage []domain.InternedString,
	builder ports.UnitBuilder,
	parallelism int,
) []unitOutcome {
	outcomes := make([]unitOutcome, len(stage))

	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, name := range stage {
		g.Go(func() error {
			outcomes[i] = o.buildOne(ctx, graph, name, builder)
			return nil
		})
	}

	// Workers only ever return nil.
	_ = g.Wait()

	return outcomes
}

// buildOne computes the unit's fingerprint, consults the cache and invokes
// the build callback on a miss. Fingerprint failures count as a hard failure
// of the unit.
func (o *Orchestrator) buildOne(
	ctx context.Context,
	graph *domain.UnitGraph,
	name domain.InternedString,
	builder ports.UnitBuilder,
) unitOutcome {
	unit, ok := graph.Unit(name)
	if !ok {
		return unitOutcome{name: name, err: zerr.With(domain.ErrUnknownUnit, "unit", name.String())}
	}

	ctx, vertex := o.telemetry.Record(ctx, name.String())

	fingerprint, err := o.fingerprintOf(&unit)
	if err != nil {
		vertex.Complete(err)
		return unitOutcome{name: name, err: err}
	}

	// A cached failure is re-attempted even when the fingerprint matches;
	// only a recorded success satisfies a hit.
	if !o.store.IsStale(name.String(), fingerprint) {
		if entry, getErr := o.store.Get(name.String()); getErr == nil && entry != nil && entry.LastResult.Success {
			vertex.Cached()
			vertex.Complete(nil)
			return unitOutcome{name: name, cacheHit: true, fingerprint: fingerprint}
		}
	}

	buildStart := o.clock.Now()
	res, err := builder.BuildUnit(ctx, &unit)
	if res.Duration == 0 {
		res.Duration = o.clock.Since(buildStart)
	}
	if err != nil {
		res.Success = false
		err = zerr.With(zerr.Wrap(err, domain.ErrUnitBuildFailed.Error()), "unit", name.String())
	} else {
		res.Success = true
	}

	vertex.Complete(err)

	return unitOutcome{name: name, fingerprint: fingerprint, result: res, err: err}
}

// fingerprintOf combines the unit's own source digest with the current
// fingerprints of its direct dependencies. Dependencies built in earlier
// stages are already committed, so their entries are stable here.
func (o *Orchestrator) fingerprintOf(unit *domain.Unit) (string, error) {
	sourceDigest, err := o.hasher.ComputeSourceDigest(unit, o.root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash unit sources"), "unit", unit.Name.String())
	}

	depFingerprints := make([]string, 0, len(unit.Dependencies))
	for _, dep := range unit.Dependencies {
		entry, getErr := o.store.Get(dep.String())
		if getErr != nil || entry == nil {
			// Never-built dependency; contributes an empty fingerprint.
			depFingerprints = append(depFingerprints, "")
			continue
		}
		depFingerprints = append(depFingerprints, entry.Fingerprint)
	}

	return domain.ComputeFingerprint(sourceDigest, depFingerprints), nil
}

// commitStage records the stage's outcomes and performs all cache writes, in
// stage order, on the orchestrator goroutine. Failures are cached too, so a
// re-run can distinguish "never built" from "built and failed".
func (o *Orchestrator) commitStage(outcomes []unitOutcome, result *domain.BuildResult) error {
	for _, outcome := range outcomes {
		if outcome.cacheHit {
			o.metrics.CacheHit()
			result.SkippedUnits = append(result.SkippedUnits, domain.SkippedUnit{
				Name:   outcome.name,
				Reason: domain.SkipCacheHit,
			})
			continue
		}

		entry := domain.CacheEntry{
			UnitName:    outcome.name.String(),
			Fingerprint: outcome.fingerprint,
			LastResult:  outcome.result,
			BuiltAt:     o.clock.Now(),
		}
		if err := o.store.Put(entry); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to cache build result"), "unit", outcome.name.String())
		}

		if outcome.err != nil {
			o.metrics.ObserveBuild("failed", outcome.result.Duration)
			o.logger.Error(outcome.err)
			result.FailedUnits = append(result.FailedUnits, domain.FailedUnit{
				Name: outcome.name,
				Err:  outcome.err,
			})
			continue
		}

		o.metrics.ObserveBuild("succeeded", outcome.result.Duration)
		result.SucceededUnits = append(result.SucceededUnits, outcome.name)
	}

	return nil
}
