package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/adapters/cas"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/shell"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/impact"
	"go.trai.ch/mason/internal/engine/orchestrator"
	"go.trai.ch/mason/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			impact.NodeID,
			orchestrator.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			shell.NodeID,
			cas.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	analyzer, err := graft.Dep[*impact.Analyzer](ctx)
	if err != nil {
		return nil, err
	}

	orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, sched, analyzer, orch, store, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[ports.UnitBuilder](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(application, log, builder, store), nil
}
