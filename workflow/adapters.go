package workflow

import (
	"context"

	"github.com/novaagent/core/nodes"
	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

// adaptPlanner narrows a workflow.Planner into nodes.Planner. The two
// signatures already agree; this exists so Graph construction has one
// uniform adaptation story for every collaborator.
func adaptPlanner(p Planner) nodes.Planner {
	return func(ctx context.Context, s *state.AgentState) (*state.Plan, error) {
		return p(ctx, s)
	}
}

// adaptActionSelector drops the error return: a selector error carries no
// information a node could act on beyond "no actions were selected", which
// nodes.Act already routes to Recover.
func adaptActionSelector(sel ActionSelector) nodes.ActionSelector {
	return func(ctx context.Context, s *state.AgentState, tooling tools.ToolingConfig) []state.ToolCall {
		calls, err := sel(ctx, s, tooling)
		if err != nil {
			s.Telemetry.Event("action_selector_error", map[string]any{"error": err.Error()})
			return nil
		}
		return calls
	}
}

// adaptVerifier folds a verifier error into a failed verification, with the
// error recorded in the details map for audit.
func adaptVerifier(v Verifier) nodes.Verifier {
	return func(ctx context.Context, s *state.AgentState, tooling tools.ToolingConfig) (bool, map[string]any) {
		ok, details, err := v(ctx, s, tooling)
		if err != nil {
			if details == nil {
				details = map[string]any{}
			}
			details["error"] = err.Error()
			return false, details
		}
		return ok, details
	}
}

// adaptRecovery passes the error straight through: unlike a selector or
// verifier error, a Recovery failure has no "do nothing and keep going" safe
// reading — nodes.Recover treats it as terminal (FAILED/RECOVERY_ERROR), the
// same way a Planner error is terminal (FAILED/PLAN_ERROR).
func adaptRecovery(r Recovery) nodes.Recovery {
	return func(ctx context.Context, s *state.AgentState, tooling tools.ToolingConfig) ([]state.ToolCall, error) {
		return r(ctx, s, tooling)
	}
}

// remoteClientAdapter adapts the error-returning workflow.RemoteClient to
// the executor package's ToolResult-only RemoteClient contract, the same
// "communicate failure through the result, not a Go error" convention the
// rest of the execution core follows once a call crosses into node/executor
// territory.
type remoteClientAdapter struct {
	client RemoteClient
}

func (a remoteClientAdapter) Call(ctx context.Context, fq tools.RemoteName, args map[string]any, timeoutMs int64) state.ToolResult {
	res, err := a.client.Call(ctx, string(fq), args, int(timeoutMs))
	if err != nil {
		return state.ToolResult{OK: false, Error: err.Error()}
	}
	return res
}
