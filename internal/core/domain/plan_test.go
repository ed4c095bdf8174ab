package domain_test

import (
	"slices"
	"testing"

	"go.trai.ch/mason/internal/core/domain"
)

func TestBuildPlan_Restrict(t *testing.T) {
	plan := domain.BuildPlan{
		Order: []domain.InternedString{
			intern("a"), intern("b"), intern("c"), intern("d"),
		},
		Stages: [][]domain.InternedString{
			{intern("a")},
			{intern("b"), intern("c")},
			{intern("d")},
		},
	}

	keep := map[domain.InternedString]struct{}{
		intern("b"): {},
		intern("d"): {},
	}
	restricted := plan.Restrict(keep)

	wantOrder := []domain.InternedString{intern("b"), intern("d")}
	if !slices.Equal(restricted.Order, wantOrder) {
		t.Errorf("expected order %v, got %v", wantOrder, restricted.Order)
	}

	// The stage containing only "a" is dropped entirely; the others keep
	// their relative position.
	if len(restricted.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(restricted.Stages))
	}
	if !slices.Equal(restricted.Stages[0], []domain.InternedString{intern("b")}) {
		t.Errorf("unexpected first stage: %v", restricted.Stages[0])
	}
	if !slices.Equal(restricted.Stages[1], []domain.InternedString{intern("d")}) {
		t.Errorf("unexpected second stage: %v", restricted.Stages[1])
	}

	if !restricted.Contains(intern("b")) || restricted.Contains(intern("a")) {
		t.Error("Contains disagrees with the restriction")
	}
}

func TestBuildPlan_Restrict_Empty(t *testing.T) {
	plan := domain.BuildPlan{
		Order:  []domain.InternedString{intern("a")},
		Stages: [][]domain.InternedString{{intern("a")}},
	}

	restricted := plan.Restrict(nil)
	if len(restricted.Order) != 0 || len(restricted.Stages) != 0 {
		t.Errorf("expected empty plan, got %+v", restricted)
	}
}
