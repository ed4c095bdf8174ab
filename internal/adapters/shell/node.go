package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mason/internal/core/ports"
)

// NodeID is the unique identifier for the shell builder Graft node.
const NodeID graft.ID = "adapter.shell_builder"

func init() {
	graft.Register(graft.Node[ports.UnitBuilder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.UnitBuilder, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(log, "."), nil
		},
	})
}
