package scheduler_test

import (
	"errors"
	"slices"
	"testing"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/engine/scheduler"
)

func intern(s string) domain.InternedString {
	return domain.NewInternedString(s)
}

func buildGraph(t *testing.T, units map[string][]string) *domain.UnitGraph {
	t.Helper()

	g := domain.NewUnitGraph()
	for name, deps := range units {
		interned := make([]domain.InternedString, len(deps))
		for i, dep := range deps {
			interned[i] = intern(dep)
		}
		if err := g.AddUnit(&domain.Unit{Name: intern(name), Dependencies: interned}); err != nil {
			t.Fatalf("failed to add unit %s: %v", name, err)
		}
	}
	return g
}

func stageNames(stage []domain.InternedString) []string {
	names := make([]string, len(stage))
	for i, n := range stage {
		names[i] = n.String()
	}
	return names
}

func TestSchedule_Diamond(t *testing.T) {
	// d depends on b and c, which both depend on a.
	g := buildGraph(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"a"},
		"d": {"b", "c"},
	})

	plan, err := scheduler.New().Schedule(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]string{{"a"}, {"b", "c"}, {"d"}}
	if len(plan.Stages) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(plan.Stages))
	}
	for i, stage := range plan.Stages {
		if !slices.Equal(stageNames(stage), want[i]) {
			t.Errorf("stage %d: expected %v, got %v", i, want[i], stageNames(stage))
		}
	}

	// Flattening the stages reproduces the total order.
	var flat []domain.InternedString
	for _, stage := range plan.Stages {
		flat = append(flat, stage...)
	}
	if !slices.Equal(flat, plan.Order) {
		t.Errorf("order %v does not match flattened stages %v", plan.Order, flat)
	}
}

func TestSchedule_StageIsOnePastDeepestDependency(t *testing.T) {
	// e depends on both a roots-stage unit and a stage-1 unit, so it lands in
	// stage 2 even though one of its dependencies is available earlier.
	g := buildGraph(t, map[string][]string{
		"a": nil,
		"b": nil,
		"c": {"a"},
		"e": {"b", "c"},
	})

	plan, err := scheduler.New().Schedule(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]string{{"a", "b"}, {"c"}, {"e"}}
	for i, stage := range plan.Stages {
		if !slices.Equal(stageNames(stage), want[i]) {
			t.Errorf("stage %d: expected %v, got %v", i, want[i], stageNames(stage))
		}
	}
}

func TestSchedule_LexicographicWithinStage(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"zeta":  nil,
		"alpha": nil,
		"mid":   nil,
	})

	plan, err := scheduler.New().Schedule(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(stageNames(plan.Stages[0]), []string{"alpha", "mid", "zeta"}) {
		t.Errorf("expected lexicographic stage order, got %v", stageNames(plan.Stages[0]))
	}
}

func TestSchedule_Empty(t *testing.T) {
	plan, err := scheduler.New().Schedule(domain.NewUnitGraph())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Order) != 0 || len(plan.Stages) != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}

func TestSchedule_CyclicGraph(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"a": {"b"},
		"b": {"a"},
	})

	plan, err := scheduler.New().Schedule(g)
	if !errors.Is(err, domain.ErrCyclicGraph) {
		t.Fatalf("expected ErrCyclicGraph, got %v", err)
	}
	if len(plan.Order) != 0 {
		t.Errorf("expected no partial plan, got %v", plan.Order)
	}
}

func TestSchedule_AfterRejectedEdge(t *testing.T) {
	// A rejected AddDependency must leave the graph fully schedulable.
	g := buildGraph(t, map[string][]string{
		"a": nil,
		"b": {"a"},
	})
	if err := g.AddDependency(intern("a"), intern("b")); !errors.Is(err, domain.ErrWouldCreateCycle) {
		t.Fatalf("expected ErrWouldCreateCycle, got %v", err)
	}

	plan, err := scheduler.New().Schedule(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Stages) != 2 {
		t.Errorf("expected 2 stages, got %d", len(plan.Stages))
	}
}
