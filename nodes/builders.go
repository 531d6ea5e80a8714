package nodes

import (
	"errors"

	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

// ErrNoActivePlan is returned by the builder helpers when called without a
// valid current plan/step to key the idempotency derivation against.
var ErrNoActivePlan = errors.New("nodes: no active plan")

// BuildClickFromBbox builds a ToolCall that clicks the center of bbox
// ([x1, y1, x2, y2]), for use by an ActionSelector or Recovery collaborator.
func BuildClickFromBbox(s *state.AgentState, tooling tools.ToolingConfig, bbox [4]int) (state.ToolCall, error) {
	if !ensurePlan(s) {
		return state.ToolCall{}, ErrNoActivePlan
	}
	step := s.Plan.Current()
	args := map[string]any{
		"x": (bbox[0] + bbox[2]) / 2,
		"y": (bbox[1] + bbox[3]) / 2,
	}
	return state.ToolCall{
		Name:           tooling.Click,
		Args:           args,
		IdempotencyKey: toolCallKey(s, step, string(tooling.Click), args, ""),
		TimeoutMs:      15_000,
	}, nil
}

// BuildType builds a ToolCall that types text at the current focus target.
func BuildType(s *state.AgentState, tooling tools.ToolingConfig, text string) (state.ToolCall, error) {
	if !ensurePlan(s) {
		return state.ToolCall{}, ErrNoActivePlan
	}
	step := s.Plan.Current()
	args := map[string]any{"text": text}
	return state.ToolCall{
		Name:           tooling.TypeText,
		Args:           args,
		IdempotencyKey: toolCallKey(s, step, string(tooling.TypeText), args, ""),
		TimeoutMs:      30_000,
	}, nil
}

// BuildHotkey builds a ToolCall that presses a chord of keys.
func BuildHotkey(s *state.AgentState, tooling tools.ToolingConfig, keys []string) (state.ToolCall, error) {
	if !ensurePlan(s) {
		return state.ToolCall{}, ErrNoActivePlan
	}
	step := s.Plan.Current()
	args := map[string]any{"keys": keys}
	return state.ToolCall{
		Name:           tooling.Hotkey,
		Args:           args,
		IdempotencyKey: toolCallKey(s, step, string(tooling.Hotkey), args, ""),
		TimeoutMs:      15_000,
	}, nil
}
