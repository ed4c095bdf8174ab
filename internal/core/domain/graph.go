// Package domain contains the core domain model for the unit dependency graph.
package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// UnitGraph holds the registered units and their directed dependency edges.
// Both forward adjacency (unit -> dependencies) and reverse adjacency
// (unit -> dependents) are maintained so that scheduling and impact analysis
// get O(1) neighbor lookup. Traversal is always by name lookup in the maps,
// never by embedded back-references, which keeps the graph serializable.
type UnitGraph struct {
	units      map[InternedString]Unit
	deps       map[InternedString]map[InternedString]struct{}
	dependents map[InternedString]map[InternedString]struct{}
}

// NewUnitGraph creates a new empty UnitGraph.
func NewUnitGraph() *UnitGraph {
	return &UnitGraph{
		units:      make(map[InternedString]Unit),
		deps:       make(map[InternedString]map[InternedString]struct{}),
		dependents: make(map[InternedString]map[InternedString]struct{}),
	}
}

// AddUnit registers a unit and the edges derived from its declared
// dependencies. It returns ErrDuplicateUnit if the name is already taken.
//
// Declared dependencies may reference units that have not been registered yet;
// bulk loading is order-independent and unresolved names are reported by
// Validate or by the scheduler.
func (g *UnitGraph) AddUnit(u *Unit) error {
	if _, exists := g.units[u.Name]; exists {
		return zerr.With(ErrDuplicateUnit, "unit", u.Name.String())
	}

	g.units[u.Name] = *u
	if g.deps[u.Name] == nil {
		g.deps[u.Name] = make(map[InternedString]struct{})
	}
	if g.dependents[u.Name] == nil {
		g.dependents[u.Name] = make(map[InternedString]struct{})
	}

	for _, dep := range u.Dependencies {
		g.deps[u.Name][dep] = struct{}{}
		if g.dependents[dep] == nil {
			g.dependents[dep] = make(map[InternedString]struct{})
		}
		g.dependents[dep][u.Name] = struct{}{}
	}

	return nil
}

// AddDependency adds the edge "from requires to". It returns ErrUnknownUnit
// if either unit is absent and ErrWouldCreateCycle if committing the edge
// would make from reachable from itself. The check is tentative: on failure
// the graph is left unchanged.
func (g *UnitGraph) AddDependency(from, to InternedString) error {
	if _, ok := g.units[from]; !ok {
		return zerr.With(ErrUnknownUnit, "unit", from.String())
	}
	if _, ok := g.units[to]; !ok {
		return zerr.With(ErrUnknownUnit, "unit", to.String())
	}

	if _, exists := g.deps[from][to]; exists {
		return nil
	}

	// Walk forward edges from the prospective dependency. Reaching "from"
	// means the new edge would close a cycle.
	if from == to || g.reaches(to, from) {
		err := zerr.With(ErrWouldCreateCycle, "from", from.String())
		return zerr.With(err, "to", to.String())
	}

	g.deps[from][to] = struct{}{}
	g.dependents[to][from] = struct{}{}

	u := g.units[from]
	u.Dependencies = append(slices.Clone(u.Dependencies), to)
	g.units[from] = u

	return nil
}

// RemoveDependency removes the edge "from requires to".
// It returns ErrUnknownUnit if either unit is absent.
func (g *UnitGraph) RemoveDependency(from, to InternedString) error {
	if _, ok := g.units[from]; !ok {
		return zerr.With(ErrUnknownUnit, "unit", from.String())
	}
	if _, ok := g.units[to]; !ok {
		return zerr.With(ErrUnknownUnit, "unit", to.String())
	}

	delete(g.deps[from], to)
	delete(g.dependents[to], from)

	u := g.units[from]
	u.Dependencies = slices.DeleteFunc(slices.Clone(u.Dependencies), func(d InternedString) bool {
		return d == to
	})
	g.units[from] = u

	return nil
}

// RemoveUnit removes a unit from the graph. It returns ErrHasDependents if
// any other unit still lists it as a dependency; the caller must remove the
// dependent edges first.
func (g *UnitGraph) RemoveUnit(name InternedString) error {
	if _, ok := g.units[name]; !ok {
		return zerr.With(ErrUnknownUnit, "unit", name.String())
	}
	if len(g.dependents[name]) > 0 {
		return zerr.With(ErrHasDependents, "unit", name.String())
	}

	for dep := range g.deps[name] {
		delete(g.dependents[dep], name)
	}
	delete(g.deps, name)
	delete(g.dependents, name)
	delete(g.units, name)

	return nil
}

// Unit returns a copy of the named unit.
func (g *UnitGraph) Unit(name InternedString) (Unit, bool) {
	u, ok := g.units[name]
	if !ok {
		return Unit{}, false
	}
	u.Dependencies = slices.Clone(u.Dependencies)
	u.Artifacts = slices.Clone(u.Artifacts)
	u.Command = slices.Clone(u.Command)
	return u, true
}

// DependenciesOf returns the direct dependencies of the named unit, sorted by
// name. The returned slice is a copy; mutating it cannot corrupt the graph.
func (g *UnitGraph) DependenciesOf(name InternedString) ([]InternedString, error) {
	if _, ok := g.units[name]; !ok {
		return nil, zerr.With(ErrUnknownUnit, "unit", name.String())
	}
	return sortedKeys(g.deps[name]), nil
}

// DependentsOf returns the direct dependents of the named unit, sorted by
// name. The returned slice is a copy.
func (g *UnitGraph) DependentsOf(name InternedString) ([]InternedString, error) {
	if _, ok := g.units[name]; !ok {
		return nil, zerr.With(ErrUnknownUnit, "unit", name.String())
	}
	return sortedKeys(g.dependents[name]), nil
}

// Units returns all registered unit names, sorted.
func (g *UnitGraph) Units() []InternedString {
	return sortedKeys(g.units)
}

// UnitCount returns the number of registered units.
func (g *UnitGraph) UnitCount() int {
	return len(g.units)
}

// Has reports whether the named unit is registered.
func (g *UnitGraph) Has(name InternedString) bool {
	_, ok := g.units[name]
	return ok
}

// Validate checks that every declared dependency resolves to a registered
// unit and that the graph is acyclic. Graphs built exclusively through
// AddDependency cannot contain cycles; Validate exists for bulk-loaded graphs
// (e.g. a deserialized manifest) that bypass the incremental check.
func (g *UnitGraph) Validate() error {
	for _, name := range g.Units() {
		for dep := range g.deps[name] {
			if _, ok := g.units[dep]; !ok {
				err := zerr.With(ErrUnknownUnit, "unit", name.String())
				return zerr.With(err, "dependency", dep.String())
			}
		}
	}

	if cycles := FindCycles(g); len(cycles) > 0 {
		return zerr.With(ErrCyclicGraph, "cycle", FormatCycle(cycles[0]))
	}

	return nil
}

// reaches reports whether target is reachable from start via forward
// (dependency) edges.
func (g *UnitGraph) reaches(start, target InternedString) bool {
	seen := map[InternedString]struct{}{start: {}}
	stack := []InternedString{start}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		for dep := range g.deps[n] {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}

	return false
}

func sortedKeys[V any](m map[InternedString]V) []InternedString {
	keys := make([]InternedString, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b InternedString) int {
		if a.String() < b.String() {
			return -1
		}
		if a.String() > b.String() {
			return 1
		}
		return 0
	})
	return keys
}
