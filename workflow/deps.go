// Package workflow wires the nodes, router, and engine packages into a
// runnable graph, and owns the dependency bundle a host supplies to stand
// one up: planner, action selector, verifier, recovery, tool registry, and
// remote tool transport.
package workflow

import (
	"context"

	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

// ToolingConfig is the alias table nodes address tools by. Re-exported here
// so callers configuring a Graph never need to import package tools
// directly for the common case.
type ToolingConfig = tools.ToolingConfig

// Planner produces a Plan for the run's goal.
type Planner func(ctx context.Context, s *state.AgentState) (*state.Plan, error)

// ActionSelector chooses the ToolCalls that advance the current step.
type ActionSelector func(ctx context.Context, s *state.AgentState, tooling ToolingConfig) ([]state.ToolCall, error)

// Verifier judges whether the current step's success criteria are met.
type Verifier func(ctx context.Context, s *state.AgentState, tooling ToolingConfig) (bool, map[string]any, error)

// Recovery produces remedial ToolCalls after a failed step.
type Recovery func(ctx context.Context, s *state.AgentState, tooling ToolingConfig) ([]state.ToolCall, error)

// RemoteClient dispatches a resolved fully-qualified remote tool call.
type RemoteClient interface {
	Call(ctx context.Context, fqName string, args map[string]any, timeoutMs int) (state.ToolResult, error)
}
