package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Scheduler, error) {
			return New(), nil
		},
	})
}
