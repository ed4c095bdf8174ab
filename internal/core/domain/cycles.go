package domain

import "strings"

// dfs colors for cycle detection.
const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully explored
)

// FindCycles scans the graph with a three-color depth-first search and
// returns one representative cycle per offending strongly-connected
// component. Each cycle is reported as the slice of unit names from the
// first occurrence of the repeated node to the closing node, inclusive.
//
// An empty result proves the graph is a DAG. The search does not enumerate
// every possible cycle; one witness per component is enough for diagnosis.
func FindCycles(g *UnitGraph) [][]InternedString {
	color := make(map[InternedString]int, len(g.units))
	covered := make(map[InternedString]struct{})
	var cycles [][]InternedString
	var path []InternedString

	var visit func(u InternedString)
	visit = func(u InternedString) {
		color[u] = gray
		path = append(path, u)

		for _, dep := range sortedKeys(g.deps[u]) {
			if _, ok := g.units[dep]; !ok {
				// Unresolved name; Validate reports these separately.
				continue
			}
			switch color[dep] {
			case gray:
				recordCycle(path, dep, covered, &cycles)
			case white:
				visit(dep)
			}
		}

		color[u] = black
		path = path[:len(path)-1]
	}

	for _, name := range g.Units() {
		if color[name] == white {
			visit(name)
		}
	}

	return cycles
}

// recordCycle slices the current DFS path from the first occurrence of the
// repeated node and appends it, closing node included, unless the component
// already has a representative cycle.
func recordCycle(path []InternedString, repeated InternedString, covered map[InternedString]struct{}, cycles *[][]InternedString) {
	start := 0
	for i, n := range path {
		if n == repeated {
			start = i
			break
		}
	}

	cycle := make([]InternedString, 0, len(path)-start+1)
	cycle = append(cycle, path[start:]...)
	cycle = append(cycle, repeated)

	for _, n := range cycle {
		if _, ok := covered[n]; ok {
			return
		}
	}
	for _, n := range cycle {
		covered[n] = struct{}{}
	}

	*cycles = append(*cycles, cycle)
}

// FormatCycle renders a cycle as "a -> b -> a" for error metadata.
func FormatCycle(cycle []InternedString) string {
	parts := make([]string, len(cycle))
	for i, n := range cycle {
		parts[i] = n.String()
	}
	return strings.Join(parts, " -> ")
}
