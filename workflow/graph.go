package workflow

import (
	"context"
	"fmt"

	"github.com/novaagent/core/engine"
	"github.com/novaagent/core/engine/inmem"
	"github.com/novaagent/core/executor"
	"github.com/novaagent/core/nodes"
	"github.com/novaagent/core/policy"
	"github.com/novaagent/core/router"
	"github.com/novaagent/core/state"
	"github.com/novaagent/core/telemetry"
)

// Graph is the assembled nine-node execution core, ready to Run an
// AgentState to a terminal status or to a paused WAITING_APPROVAL. Built
// once per process (or per test) and reused across runs. The executor, and
// with it the idempotency cache, is created once in New and shared by every
// Run on the Graph; cached results are not cleared between runs.
type Graph struct {
	eng engine.Engine
}

// New assembles a Graph over deps. Every node's outgoing edge is its
// matching router.From* function, including initialize (to plan) and plan
// (to perceive), which send a terminal status to finalize instead. Panics if a required collaborator is missing —
// this is wiring-time host misuse, not a runtime condition a run can hit.
func New(deps RuntimeDeps) *Graph {
	if deps.Planner == nil || deps.ActionSelector == nil || deps.Verifier == nil || deps.Recovery == nil {
		panic("workflow: New requires Planner, ActionSelector, Verifier, and Recovery")
	}
	if deps.Registry == nil {
		panic("workflow: New requires a Registry")
	}

	logger := deps.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = telemetry.NewNoopTracer()
	}

	polEngine := deps.Policy
	if polEngine == nil {
		polEngine = policy.New()
	}

	execOpts := []executor.Option{
		executor.WithLogger(logger),
		executor.WithTracer(tracer),
	}
	if deps.RemoteClient != nil {
		execOpts = append(execOpts, executor.WithRemoteClient(remoteClientAdapter{client: deps.RemoteClient}))
	}
	if deps.CacheSize > 0 {
		execOpts = append(execOpts, executor.WithCacheSize(deps.CacheSize))
	}
	exec := executor.New(deps.Registry, polEngine, execOpts...)

	nodeDeps := nodes.Deps{
		Executor:           exec,
		Tooling:            deps.Tooling,
		Planner:            adaptPlanner(deps.Planner),
		ActionSelector:     adaptActionSelector(deps.ActionSelector),
		Verifier:           adaptVerifier(deps.Verifier),
		Recovery:           adaptRecovery(deps.Recovery),
		StoreScreenshotB64: deps.StoreScreenshotB64,
		PreferUIATree:      deps.PreferUIATree,
		OmniparserEnabled:  deps.OmniparserEnabled,
		PostActionCapture:  deps.PostActionCapture,
		Tracer:             tracer,
		Logger:             logger,
	}

	eng := inmem.New(inmem.WithLogger(logger), inmem.WithTracer(tracer))

	register := func(name string, handler func(context.Context, *state.AgentState, nodes.Deps) *state.AgentState, rt engine.RouterFunc) {
		err := eng.RegisterNode(engine.NodeDefinition{
			Name: name,
			Handler: func(ctx context.Context, s *state.AgentState) *state.AgentState {
				return handler(ctx, s, nodeDeps)
			},
			Router: rt,
		})
		if err != nil {
			panic(fmt.Sprintf("workflow: register node %q: %v", name, err))
		}
	}

	register(router.Initialize, nodes.Initialize, router.FromInitialize)
	register(router.Plan, nodes.Plan, router.FromPlan)
	register(router.Perceive, nodes.Perceive, router.FromPerceive)
	register(router.PolicyCheck, nodes.PolicyCheck, router.FromPolicyCheck)
	register(router.Act, nodes.Act, router.FromAct)
	register(router.Verify, nodes.Verify, router.FromVerify)
	register(router.Recover, nodes.Recover, router.FromRecover)
	register(router.WaitingApproval, nodes.WaitingApproval, router.FromWaitingApproval)
	register(router.Finalize, nodes.Finalize, router.FromFinalize)

	return &Graph{eng: eng}
}

// Run drives s through the graph until a terminal status or a paused
// WAITING_APPROVAL, returning the resulting state. A fresh state (status
// INIT) enters at Initialize; a paused or otherwise resumed state re-enters
// at the node matching its current status, so a second Run call after a
// host sets Approved continues the same run rather than replanning it.
func (g *Graph) Run(ctx context.Context, s *state.AgentState) (*state.AgentState, error) {
	return g.eng.Run(ctx, entryFor(s), s)
}

func entryFor(s *state.AgentState) string {
	if s.Status == state.StatusInit {
		return router.Initialize
	}
	return router.ByStatus(s)
}
