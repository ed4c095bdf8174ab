package impact_test

import (
	"slices"
	"testing"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/engine/impact"
)

func intern(s string) domain.InternedString {
	return domain.NewInternedString(s)
}

type unitSpec struct {
	name string
	root string
	deps []string
}

func buildGraph(t *testing.T, specs []unitSpec) *domain.UnitGraph {
	t.Helper()

	g := domain.NewUnitGraph()
	for _, spec := range specs {
		deps := make([]domain.InternedString, len(spec.deps))
		for i, dep := range spec.deps {
			deps[i] = intern(dep)
		}
		unit := &domain.Unit{
			Name:         intern(spec.name),
			SourceRoot:   intern(spec.root),
			Dependencies: deps,
		}
		if err := g.AddUnit(unit); err != nil {
			t.Fatalf("failed to add unit %s: %v", spec.name, err)
		}
	}
	return g
}

func names(units []domain.InternedString) []string {
	res := make([]string, len(units))
	for i, u := range units {
		res[i] = u.String()
	}
	return res
}

func TestAffectedUnits_TransitiveDependents(t *testing.T) {
	g := buildGraph(t, []unitSpec{
		{name: "core", root: "core"},
		{name: "api", root: "api", deps: []string{"core"}},
		{name: "cli", root: "cli", deps: []string{"api"}},
		{name: "docs", root: "docs"},
	})

	affected := impact.New().AffectedUnits(g, []string{"core/graph.go"})

	want := []string{"api", "cli", "core"}
	got := names(affected)
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAffectedUnits_LongestPrefixWins(t *testing.T) {
	// Nested source roots: the deeper unit owns its subtree.
	g := buildGraph(t, []unitSpec{
		{name: "platform", root: "services"},
		{name: "auth", root: "services/auth"},
	})

	affected := impact.New().AffectedUnits(g, []string{"services/auth/login.go"})
	if got := names(affected); !slices.Equal(got, []string{"auth"}) {
		t.Errorf("expected [auth], got %v", got)
	}

	affected = impact.New().AffectedUnits(g, []string{"services/billing/invoice.go"})
	if got := names(affected); !slices.Equal(got, []string{"platform"}) {
		t.Errorf("expected [platform], got %v", got)
	}
}

func TestAffectedUnits_SegmentBoundary(t *testing.T) {
	// "apiserver/..." must not match the root "api".
	g := buildGraph(t, []unitSpec{
		{name: "api", root: "api"},
	})

	if affected := impact.New().AffectedUnits(g, []string{"apiserver/main.go"}); len(affected) != 0 {
		t.Errorf("expected no affected units, got %v", names(affected))
	}

	// A path equal to the root itself does match.
	if affected := impact.New().AffectedUnits(g, []string{"api"}); len(affected) != 1 {
		t.Errorf("expected [api], got %v", names(affected))
	}
}

func TestAffectedUnits_OutsideEveryRoot(t *testing.T) {
	g := buildGraph(t, []unitSpec{
		{name: "core", root: "core"},
	})

	if affected := impact.New().AffectedUnits(g, []string{"README.md"}); len(affected) != 0 {
		t.Errorf("expected no affected units, got %v", names(affected))
	}
}

func TestAffectedUnits_EmptyChangeSet(t *testing.T) {
	g := buildGraph(t, []unitSpec{
		{name: "core", root: "core"},
	})

	if affected := impact.New().AffectedUnits(g, nil); affected != nil {
		t.Errorf("expected nil, got %v", names(affected))
	}
	if affected := impact.New().AffectedUnits(g, []string{}); affected != nil {
		t.Errorf("expected nil for empty slice, got %v", names(affected))
	}
}

func TestAffectedUnits_EmptySourceRootNeverOwns(t *testing.T) {
	// Units without a source root only rebuild through their dependencies.
	g := buildGraph(t, []unitSpec{
		{name: "core", root: "core"},
		{name: "meta", root: "", deps: []string{"core"}},
	})

	affected := impact.New().AffectedUnits(g, []string{"core/x.go"})
	got := names(affected)
	slices.Sort(got)
	if !slices.Equal(got, []string{"core", "meta"}) {
		t.Errorf("expected [core meta], got %v", got)
	}

	// But an arbitrary path never attributes to the rootless unit.
	if affected := impact.New().AffectedUnits(g, []string{"random/file"}); len(affected) != 0 {
		t.Errorf("expected no affected units, got %v", names(affected))
	}
}
