package domain

import "slices"

// BuildPlan is the immutable output of scheduling: a total order in which
// every dependency appears before its dependents, and its partition into
// stages. Stage i contains exactly the units whose dependencies are fully
// contained in stages 0..i-1, so units within one stage may run concurrently.
//
// Invariant: flattening Stages in order reproduces Order, and every unit
// appears in exactly one stage.
type BuildPlan struct {
	Order  []InternedString
	Stages [][]InternedString
}

// Contains reports whether the named unit is part of the plan.
func (p BuildPlan) Contains(name InternedString) bool {
	return slices.Contains(p.Order, name)
}

// Restrict returns a new plan containing only the given units, preserving
// stage positions. Stages left empty by the restriction are dropped.
func (p BuildPlan) Restrict(keep map[InternedString]struct{}) BuildPlan {
	restricted := BuildPlan{}
	for _, stage := range p.Stages {
		var kept []InternedString
		for _, name := range stage {
			if _, ok := keep[name]; ok {
				kept = append(kept, name)
			}
		}
		if len(kept) > 0 {
			restricted.Stages = append(restricted.Stages, kept)
			restricted.Order = append(restricted.Order, kept...)
		}
	}
	return restricted
}
