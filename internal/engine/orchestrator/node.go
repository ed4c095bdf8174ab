package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mason/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mason/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mason/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mason/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mason/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.HasherNodeID,
			cas.NodeID,
			telemetry.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			hasher, err := graft.Dep[ports.SourceHasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			met, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(hasher, store, tel, met, log), nil
		},
	})
}
