package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaagent/core/registry"
	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

func newTestRegistry(clickOK func() bool) *registry.Registry {
	reg := registry.New(registry.NewRemoteMap(nil))
	reg.Register(tools.ScreenCapture, func(map[string]any) state.ToolResult {
		return state.ToolResult{OK: true, Data: map[string]any{"hash": "h1", "focused_window": "win"}}
	})
	reg.Register(tools.Wait, func(map[string]any) state.ToolResult {
		return state.ToolResult{OK: true, Data: map[string]any{"slept_ms": 1}}
	})
	reg.Register(tools.Click, func(args map[string]any) state.ToolResult {
		if clickOK == nil || clickOK() {
			return state.ToolResult{OK: true, Data: "clicked"}
		}
		return state.ToolResult{OK: false, Error: "CLICK_ERROR: simulated"}
	})
	return reg
}

func onePlan(risk state.Risk, maxRetries int) Planner {
	return func(_ context.Context, _ *state.AgentState) (*state.Plan, error) {
		step := state.NewStep("s1", "click the button", "click at (10,20)")
		step.Risk = risk
		step.MaxRetries = maxRetries
		return &state.Plan{Objective: "press the button", Steps: []state.Step{step}}, nil
	}
}

func clickSelector(_ context.Context, _ *state.AgentState, tooling ToolingConfig) ([]state.ToolCall, error) {
	return []state.ToolCall{
		{Name: tooling.Click, Args: map[string]any{"x": 10, "y": 20}, IdempotencyKey: "k1", TimeoutMs: 5000},
	}, nil
}

func alwaysOKVerifier(_ context.Context, _ *state.AgentState, _ ToolingConfig) (bool, map[string]any, error) {
	return true, map[string]any{"reason": "element visible"}, nil
}

func noopRecovery(_ context.Context, _ *state.AgentState, _ ToolingConfig) ([]state.ToolCall, error) {
	return nil, nil
}

// Scenario 1: happy single-step.
func TestGraph_HappySingleStep(t *testing.T) {
	reg := newTestRegistry(nil)
	g := New(RuntimeDeps{
		Planner:           onePlan(state.RiskLow, 2),
		ActionSelector:    clickSelector,
		Verifier:          alwaysOKVerifier,
		Recovery:          noopRecovery,
		Registry:          reg,
		Tooling:           tools.DefaultToolingConfig(),
		PostActionCapture: true,
	})

	s := state.New("press the button")
	out, err := g.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, state.StatusDone, out.Status)
	require.Len(t, out.Actions, 1)
	rec := out.Actions[0]
	assert.Equal(t, tools.Click, rec.Tool)
	assert.Equal(t, "k1", rec.IdempotencyKey)
	require.NotNil(t, rec.OK)
	assert.True(t, *rec.OK)
	require.NotNil(t, rec.EffectFingerprint)
	assert.Equal(t, "h1", *rec.EffectFingerprint)
}

// Scenario 2: recovery then success. The executor caches failures too, so
// each attempt uses its own idempotency key to get a fresh dispatch.
func TestGraph_RecoveryThenSuccess(t *testing.T) {
	attempt := 0
	selector := func(_ context.Context, s *state.AgentState, tooling ToolingConfig) ([]state.ToolCall, error) {
		attempt++
		return []state.ToolCall{
			{Name: tooling.Click, Args: map[string]any{"x": 10, "y": 20}, IdempotencyKey: fmt.Sprintf("k1-%d", attempt), TimeoutMs: 5000},
		}, nil
	}
	recovery := func(_ context.Context, s *state.AgentState, tooling ToolingConfig) ([]state.ToolCall, error) {
		return []state.ToolCall{
			{Name: tooling.Wait, Args: map[string]any{"ms": 250}, IdempotencyKey: "kw", TimeoutMs: 5000},
		}, nil
	}

	reg := newTestRegistry(func() bool { return attempt >= 2 })
	g := New(RuntimeDeps{
		Planner:        onePlan(state.RiskLow, 2),
		ActionSelector: selector,
		Verifier:       alwaysOKVerifier,
		Recovery:       recovery,
		Registry:       reg,
		Tooling:        tools.DefaultToolingConfig(),
	})

	s := state.New("press the button")
	out, err := g.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, state.StatusDone, out.Status)
	assert.GreaterOrEqual(t, len(out.Actions), 2)
	assert.Equal(t, 1, out.Retry.Used)
}

// Scenario 3: retry exhausted.
func TestGraph_RetryExhausted(t *testing.T) {
	verifier := func(_ context.Context, _ *state.AgentState, _ ToolingConfig) (bool, map[string]any, error) {
		return false, map[string]any{"reason": "still not visible"}, nil
	}

	reg := newTestRegistry(nil)
	g := New(RuntimeDeps{
		Planner:        onePlan(state.RiskLow, 1),
		ActionSelector: clickSelector,
		Verifier:       verifier,
		Recovery:       noopRecovery,
		Registry:       reg,
		Tooling:        tools.DefaultToolingConfig(),
	})

	s := state.New("press the button")
	out, err := g.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, state.StatusFailed, out.Status)
	require.NotNil(t, out.Telemetry.ErrorCode)
	assert.Equal(t, state.ErrRetryExhausted.String(), *out.Telemetry.ErrorCode)
	assert.Equal(t, 1, out.Retry.Used)
}

// Scenario 4: policy allowlist denial escalates.
func TestGraph_PolicyAllowlistDenialEscalates(t *testing.T) {
	clickCalls := 0
	reg := newTestRegistry(func() bool { clickCalls++; return true })
	g := New(RuntimeDeps{
		Planner:        onePlan(state.RiskLow, 2),
		ActionSelector: clickSelector,
		Verifier:       alwaysOKVerifier,
		Recovery:       noopRecovery,
		Registry:       reg,
		Tooling:        tools.DefaultToolingConfig(),
	})

	s := state.New("press the button")
	s.Policy.ToolAllowlist = []tools.Ident{tools.ScreenCapture}

	out, err := g.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, state.StatusEscalated, out.Status)
	require.NotNil(t, out.Telemetry.ErrorCode)
	assert.Equal(t, state.ErrPolicyDeny.String(), *out.Telemetry.ErrorCode)
	assert.Equal(t, 0, clickCalls, "the click tool itself must never dispatch")
}

// Recovery collaborator errors are terminal (FAILED/RECOVERY_ERROR), mirroring
// a Planner error rather than being swallowed into an empty-calls retry.
func TestGraph_RecoveryCollaboratorErrorIsTerminal(t *testing.T) {
	verifier := func(_ context.Context, _ *state.AgentState, _ ToolingConfig) (bool, map[string]any, error) {
		return false, map[string]any{"reason": "still not visible"}, nil
	}
	failingRecovery := func(_ context.Context, _ *state.AgentState, _ ToolingConfig) ([]state.ToolCall, error) {
		return nil, errors.New("recovery backend unavailable")
	}

	reg := newTestRegistry(nil)
	g := New(RuntimeDeps{
		Planner:        onePlan(state.RiskLow, 3),
		ActionSelector: clickSelector,
		Verifier:       verifier,
		Recovery:       failingRecovery,
		Registry:       reg,
		Tooling:        tools.DefaultToolingConfig(),
	})

	s := state.New("press the button")
	out, err := g.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, state.StatusFailed, out.Status)
	require.NotNil(t, out.Telemetry.ErrorCode)
	assert.Equal(t, state.ErrRecoveryError.String(), *out.Telemetry.ErrorCode)
}

// Scenario 5: approval gate pauses, then proceeds once approved.
func TestGraph_ApprovalGate(t *testing.T) {
	reg := newTestRegistry(nil)
	g := New(RuntimeDeps{
		Planner:        onePlan(state.RiskHigh, 2),
		ActionSelector: clickSelector,
		Verifier:       alwaysOKVerifier,
		Recovery:       noopRecovery,
		Registry:       reg,
		Tooling:        tools.DefaultToolingConfig(),
	})

	s := state.New("press the button")
	s.Policy.RequireApprovalForHighRisk = true

	paused, err := g.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, state.StatusWaitingApproval, paused.Status)
	assert.True(t, paused.RequiresHumanApproval)
	assert.Len(t, paused.Actions, 0, "nothing should execute before approval")

	paused.Approved = true
	done, err := g.Run(context.Background(), paused)
	require.NoError(t, err)
	assert.Equal(t, state.StatusDone, done.Status)
	assert.Len(t, done.Actions, 1)
}

// Scenario 6: idempotent replay across two Act invocations of the same call.
func TestGraph_IdempotentReplayAcrossSteps(t *testing.T) {
	verifyCount := 0
	verifier := func(_ context.Context, s *state.AgentState, _ ToolingConfig) (bool, map[string]any, error) {
		verifyCount++
		return s.Plan.Current().ID == "s2" || verifyCount > 1, nil, nil
	}
	planTwoSteps := func(_ context.Context, _ *state.AgentState) (*state.Plan, error) {
		s1 := state.NewStep("s1", "step one", "do the first thing")
		s2 := state.NewStep("s2", "step two", "do the second thing")
		return &state.Plan{Objective: "do two things", Steps: []state.Step{s1, s2}}, nil
	}
	sameKeySelector := func(_ context.Context, s *state.AgentState, tooling ToolingConfig) ([]state.ToolCall, error) {
		return []state.ToolCall{
			{Name: tooling.Click, Args: map[string]any{"x": 1, "y": 1}, IdempotencyKey: "shared-key", TimeoutMs: 5000},
		}, nil
	}

	dispatches := 0
	reg := registry.New(registry.NewRemoteMap(nil))
	reg.Register(tools.ScreenCapture, func(map[string]any) state.ToolResult {
		return state.ToolResult{OK: true, Data: map[string]any{"hash": "h1"}}
	})
	reg.Register(tools.Click, func(map[string]any) state.ToolResult {
		dispatches++
		return state.ToolResult{OK: true, Data: "clicked"}
	})

	g := New(RuntimeDeps{
		Planner:        planTwoSteps,
		ActionSelector: sameKeySelector,
		Verifier:       verifier,
		Recovery:       noopRecovery,
		Registry:       reg,
		Tooling:        tools.DefaultToolingConfig(),
	})

	s := state.New("do two things")
	out, err := g.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, state.StatusDone, out.Status)
	assert.Equal(t, 1, dispatches, "the same idempotency key must dispatch only once")

	var hits int
	for _, ev := range out.Telemetry.Events {
		if ev.Type == "tool_idempotent_hit" {
			hits++
		}
	}
	assert.GreaterOrEqual(t, hits, 1)
}
