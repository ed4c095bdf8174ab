// Package impact computes the minimal rebuild set for a set of changed paths.
package impact

import (
	"path/filepath"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
)

// Analyzer maps changed source paths to the units requiring rebuild: the
// directly touched units plus every transitive dependent.
type Analyzer struct{}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// AffectedUnits attributes each changed path to its owning unit by
// longest-prefix match against the units' source roots, then walks reverse
// adjacency breadth-first to collect transitive dependents. A path outside
// every source root is ignored; an empty change list yields an empty set.
// The result carries no ordering guarantee; callers re-derive order from
// the BuildPlan.
func (a *Analyzer) AffectedUnits(graph *domain.UnitGraph, changedPaths []string) []domain.InternedString {
	if len(changedPaths) == 0 {
		return nil
	}

	touched := make(map[domain.InternedString]struct{})
	for _, path := range changedPaths {
		if owner, ok := a.ownerOf(graph, path); ok {
			touched[owner] = struct{}{}
		}
	}

	// BFS over dependents. A unit whose dependency rebuilds is stale even if
	// none of its own files changed.
	affected := make(map[domain.InternedString]struct{}, len(touched))
	queue := make([]domain.InternedString, 0, len(touched))
	for name := range touched {
		affected[name] = struct{}{}
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		dependents, err := graph.DependentsOf(name)
		if err != nil {
			continue
		}
		for _, dep := range dependents {
			if _, seen := affected[dep]; seen {
				continue
			}
			affected[dep] = struct{}{}
			queue = append(queue, dep)
		}
	}

	result := make([]domain.InternedString, 0, len(affected))
	for _, name := range graph.Units() {
		if _, ok := affected[name]; ok {
			result = append(result, name)
		}
	}
	return result
}

// ownerOf finds the unit whose source root is the longest prefix of the
// changed path, matching on path-segment boundaries.
func (a *Analyzer) ownerOf(graph *domain.UnitGraph, path string) (domain.InternedString, bool) {
	cleaned := filepath.ToSlash(filepath.Clean(path))

	var owner domain.InternedString
	bestLen := -1
	for _, name := range graph.Units() {
		unit, ok := graph.Unit(name)
		if !ok {
			continue
		}
		root := filepath.ToSlash(filepath.Clean(unit.SourceRoot.String()))
		if root == "" || root == "." {
			continue
		}
		if cleaned != root && !strings.HasPrefix(cleaned, root+"/") {
			continue
		}
		if len(root) > bestLen {
			bestLen = len(root)
			owner = name
		}
	}

	return owner, bestLen >= 0
}
