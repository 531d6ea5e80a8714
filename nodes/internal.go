package nodes

import (
	"github.com/google/uuid"

	"github.com/novaagent/core/fingerprint"
	"github.com/novaagent/core/state"
)

func ensurePlan(s *state.AgentState) bool {
	return s.Plan != nil && s.Plan.IsValid()
}

func stepTimeoutExceeded(s *state.AgentState) bool {
	if !ensurePlan(s) || s.LastStepStartedMs == nil {
		return false
	}
	step := s.Plan.Current()
	return (state.NowMs() - *s.LastStepStartedMs) > step.TimeoutMs
}

func terminalFail(s *state.AgentState, reason string, code state.ErrorCode) *state.AgentState {
	s.SetTerminal(state.StatusFailed, reason, code)
	return s
}

func terminalEscalate(s *state.AgentState, reason string, code state.ErrorCode) *state.AgentState {
	s.SetTerminal(state.StatusEscalated, reason, code)
	return s
}

func terminalDone(s *state.AgentState, reason string) *state.AgentState {
	s.SetTerminal(state.StatusDone, reason, state.ErrDone)
	return s
}

func recordAction(s *state.AgentState, rec state.ActionRecord) {
	rec.ActionID = "act_" + uuid.New().String()[:12]
	s.Actions = append(s.Actions, rec)
}

// toolCallKey derives the deterministic idempotency key run_id:step_id:tool:
// fingerprint(args)[:suffix] used across every node that dispatches a tool.
func toolCallKey(s *state.AgentState, step state.Step, tool string, args map[string]any, suffix string) string {
	base := s.RunID + ":" + step.ID + ":" + tool + ":" + fingerprint.Stable(args)
	if suffix != "" {
		return base + ":" + suffix
	}
	return base
}

// toElementSlice normalizes an OmniParser elements payload into
// []map[string]any. A remote client decoding JSON yields []any of
// map[string]any rather than []map[string]any directly; both shapes are
// accepted, anything else (or a nil v) yields no elements.
func toElementSlice(v any) []map[string]any {
	switch els := v.(type) {
	case []map[string]any:
		return els
	case []any:
		out := make([]map[string]any, 0, len(els))
		for _, e := range els {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }
