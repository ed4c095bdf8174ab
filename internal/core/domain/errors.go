package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateUnit is returned when registering a unit whose name is already taken.
	ErrDuplicateUnit = zerr.New("unit already registered")

	// ErrUnknownUnit is returned when an operation references a unit that is not in the graph.
	ErrUnknownUnit = zerr.New("unknown unit")

	// ErrWouldCreateCycle is returned when adding a dependency edge would make the graph cyclic.
	ErrWouldCreateCycle = zerr.New("dependency would create a cycle")

	// ErrCyclicGraph is returned when the graph as a whole is not a DAG.
	// The offending cycle is attached as metadata.
	ErrCyclicGraph = zerr.New("dependency graph contains a cycle")

	// ErrHasDependents is returned when removing a unit that other units still depend on.
	ErrHasDependents = zerr.New("unit still has dependents")

	// ErrUnitBuildFailed is returned when the build callback for a unit fails.
	ErrUnitBuildFailed = zerr.New("unit build failed")

	// ErrBuildExecutionFailed signals that an orchestration run finished with failures.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
