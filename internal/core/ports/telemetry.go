package ports

import (
	"context"
	"io"
)

// Telemetry records build progress, one vertex per unit build.
type Telemetry interface {
	// Record starts a vertex for the named piece of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// EmitPlan signals the set of units planned for execution.
	EmitPlan(ctx context.Context, unitNames []string)

	// Close flushes and closes the recording session.
	Close() error
}

type vertexCtxKey struct{}

// ContextWithVertex returns a context carrying the vertex, so builders can
// stream output into the recording for their unit.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexCtxKey{}, v)
}

// VertexFromContext retrieves the vertex attached by ContextWithVertex.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexCtxKey{}).(Vertex)
	return v, ok
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Stdout returns a writer for the unit's build output.
	Stdout() io.Writer

	// Cached marks the vertex as a cache hit.
	Cached()

	// Complete marks the vertex as finished, with err non-nil on failure.
	Complete(err error)
}
