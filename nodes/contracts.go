package nodes

import (
	"context"

	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

// ToolExecutor is the capability nodes need from the executor package: gate
// + dedupe + dispatch a tool call, and report whether an alias is wired at
// all. Nodes depend on this narrow interface rather than *executor.Executor
// directly so tests can substitute a stub.
type ToolExecutor interface {
	Call(ctx context.Context, s *state.AgentState, call state.ToolCall) state.ToolResult
	Has(alias tools.Ident) bool
}

// Planner produces a Plan for the run's goal. Returning a nil Plan or one
// with no Steps is treated as a planning failure.
type Planner func(ctx context.Context, s *state.AgentState) (*state.Plan, error)

// ActionSelector chooses the ToolCalls that advance the current step.
// Returning no calls routes the run to recovery.
type ActionSelector func(ctx context.Context, s *state.AgentState, tooling tools.ToolingConfig) []state.ToolCall

// Verifier judges whether the current step's success criteria are met,
// returning a details map recorded on s.Scratch for audit.
type Verifier func(ctx context.Context, s *state.AgentState, tooling tools.ToolingConfig) (bool, map[string]any)

// Recovery produces remedial ToolCalls after a failed step. A returned error
// is a collaborator failure, not merely "no remedial calls" — Recover treats
// it as terminal (FAILED/RECOVERY_ERROR) rather than looping back to perceive.
type Recovery func(ctx context.Context, s *state.AgentState, tooling tools.ToolingConfig) ([]state.ToolCall, error)
