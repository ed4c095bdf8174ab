package domain

// Unit represents a named buildable entity: a package, a module, a project.
// The engine never interprets a unit's content; it only tracks identity,
// source attribution and dependency edges.
type Unit struct {
	Name InternedString

	// SourceRoot is the path prefix used to attribute changed files to this unit.
	SourceRoot InternedString

	// Dependencies lists the units that must be built before this one,
	// in declaration order.
	Dependencies []InternedString

	// Artifacts are the paths this unit produces. The engine keeps them for
	// cache bookkeeping only and never reads or writes them itself.
	Artifacts []InternedString

	// Command is the driver-level build command for this unit, if any.
	// The engine core ignores it; the shell builder adapter runs it.
	Command []string
}
