package progrock

import (
	"io"

	"github.com/vito/progrock"
)

// Vertex wraps *progrock.VertexRecorder behind the ports.Vertex interface.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns a writer capturing the unit's build output.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// Complete marks the vertex as finished, with err non-nil on failure.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}
