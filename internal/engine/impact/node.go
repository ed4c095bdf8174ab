package impact

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the impact analyzer Graft node.
const NodeID graft.ID = "engine.impact"

func init() {
	graft.Register(graft.Node[*Analyzer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Analyzer, error) {
			return New(), nil
		},
	})
}
