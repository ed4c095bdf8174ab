// Package scheduler computes build plans from the unit dependency graph.
package scheduler

import (
	"slices"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

// Scheduler turns a validated unit graph into a BuildPlan: a total build
// order plus its partition into parallel-executable stages.
type Scheduler struct{}

// New creates a new Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Schedule computes the plan via Kahn's algorithm, processed in waves so the
// stage partition falls out of the same pass: a unit's stage is one past the
// highest stage among its dependencies, and units with no dependencies form
// stage zero. Units within a stage are ordered lexicographically so repeated
// runs produce identical plans.
//
// It returns ErrCyclicGraph (with one offending cycle attached) if the graph
// is not a DAG, and never a partial plan.
func (s *Scheduler) Schedule(graph *domain.UnitGraph) (domain.BuildPlan, error) {
	if err := graph.Validate(); err != nil {
		return domain.BuildPlan{}, err
	}

	units := graph.Units()
	inDegree := make(map[domain.InternedString]int, len(units))
	for _, name := range units {
		deps, err := graph.DependenciesOf(name)
		if err != nil {
			return domain.BuildPlan{}, err
		}
		inDegree[name] = len(deps)
	}

	// Units() is sorted, so the seed wave is already in lexicographic order.
	var ready []domain.InternedString
	for _, name := range units {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	plan := domain.BuildPlan{}
	processed := 0

	for len(ready) > 0 {
		stage := ready
		ready = nil

		plan.Stages = append(plan.Stages, stage)
		plan.Order = append(plan.Order, stage...)
		processed += len(stage)

		for _, name := range stage {
			dependents, err := graph.DependentsOf(name)
			if err != nil {
				return domain.BuildPlan{}, err
			}
			for _, dep := range dependents {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					ready = append(ready, dep)
				}
			}
		}

		slices.SortFunc(ready, func(a, b domain.InternedString) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			default:
				return 0
			}
		})
	}

	// Validate already rejects cyclic graphs; this guards against a graph
	// mutated concurrently with scheduling.
	if processed != graph.UnitCount() {
		err := domain.ErrCyclicGraph
		if cycles := domain.FindCycles(graph); len(cycles) > 0 {
			return domain.BuildPlan{}, zerr.With(err, "cycle", domain.FormatCycle(cycles[0]))
		}
		return domain.BuildPlan{}, err
	}

	return plan, nil
}
