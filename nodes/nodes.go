// Package nodes implements the nine node functions of the execution core's
// state machine: each reads and mutates an *state.AgentState and returns
// it, never making a routing decision itself (see package router) and
// never panicking for a condition a caller can hit by misusing the
// run — only for genuine programmer error in wiring.
package nodes

import (
	"context"

	"github.com/novaagent/core/state"
)

// Initialize assigns a run id and the default policy if neither is set,
// then moves the run to PLANNING.
func Initialize(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	ctx, span := deps.tracer().Start(ctx, "node.initialize")
	defer span.End()
	sp := s.Telemetry.Span("node_initialize", nil)
	defer sp.Close()

	s.EnsureRunID()
	s.EnsurePolicyDefaults()
	s.Status = state.StatusPlanning
	s.Telemetry.Event("initialized", map[string]any{"run_id": s.RunID})
	_ = ctx
	return s
}

// Plan invokes the injected Planner, finalizes the resulting plan
// (stamping its fingerprint), and moves to PERCEIVING. A Plan call outside
// PLANNING/INIT is a no-op unless Scratch["force_replan"] is set: the
// routers re-enter Plan through that hook with whatever status the previous
// node left, and the flag is cleared once the replan runs.
func Plan(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	ctx, span := deps.tracer().Start(ctx, "node.plan")
	defer span.End()
	sp := s.Telemetry.Span("node_plan", nil)
	defer sp.Close()

	replan, _ := s.Scratch["force_replan"].(bool)
	if s.Status != state.StatusPlanning && s.Status != state.StatusInit && !replan {
		s.Telemetry.Event("plan_skipped", map[string]any{"status": string(s.Status)})
		return s
	}
	delete(s.Scratch, "force_replan")

	plan, err := deps.Planner(ctx, s)
	if err != nil {
		s.Telemetry.Event("plan_error", map[string]any{"error": err.Error()})
		return terminalFail(s, "Planner error: "+err.Error(), state.ErrPlanError)
	}
	if plan == nil || len(plan.Steps) == 0 {
		return terminalFail(s, "Planner returned empty/invalid plan", state.ErrPlanInvalid)
	}

	plan.Finalize()
	plan.CurrentStepIdx = 0
	s.Plan = plan
	ms := state.NowMs()
	s.LastStepStartedMs = &ms
	s.Status = state.StatusPerceiving

	s.Telemetry.Event("plan_created", map[string]any{
		"objective":        plan.Objective,
		"step_count":       len(plan.Steps),
		"plan_fingerprint": plan.PlanFingerprint,
	})
	return s
}

// Perceive captures a fresh PerceptionSnapshot: optional focus, mandatory
// screen capture, optional UIA tree, and conditional OmniParser pass. A
// failed capture routes to RECOVERING rather than failing the run outright
// — perception flakiness is expected to be transient.
func Perceive(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	ctx, span := deps.tracer().Start(ctx, "node.perceive")
	defer span.End()
	sp := s.Telemetry.Span("node_perceive", nil)
	defer sp.Close()

	if !ensurePlan(s) {
		return terminalFail(s, "Perceive called without a valid plan", state.ErrNoPlan)
	}
	if stepTimeoutExceeded(s) {
		return terminalFail(s, "Step timeout exceeded (perceive)", state.ErrStepTimeout)
	}

	step := s.Plan.Current()
	tooling := deps.Tooling

	if hint, ok := s.Scratch["focus_hint"]; ok && hint != nil && deps.Executor.Has(tooling.FocusWindow) {
		args := map[string]any{"hint": hint}
		deps.Executor.Call(ctx, s, state.ToolCall{
			Name: tooling.FocusWindow, Args: args,
			IdempotencyKey: toolCallKey(s, step, string(tooling.FocusWindow), args, ""),
			TimeoutMs:      15_000,
		})
	}

	if !deps.Executor.Has(tooling.ScreenCapture) {
		return terminalFail(s, "Missing required tool alias: "+string(tooling.ScreenCapture), state.ErrToolMissing)
	}

	capArgs := map[string]any{"return_b64": deps.StoreScreenshotB64}
	cap := deps.Executor.Call(ctx, s, state.ToolCall{
		Name: tooling.ScreenCapture, Args: capArgs,
		IdempotencyKey: toolCallKey(s, step, string(tooling.ScreenCapture), capArgs, ""),
		TimeoutMs:      30_000,
	})
	capData, _ := cap.Data.(map[string]any)
	if !cap.OK || capData == nil {
		s.Telemetry.Event("perceive_capture_failed", map[string]any{"error": cap.Error})
		s.Status = state.StatusRecovering
		return s
	}

	snap := state.NewPerceptionSnapshot()
	snap.ScreenshotHash, _ = capData["hash"].(string)
	if deps.StoreScreenshotB64 {
		if b64, ok := capData["b64"].(string); ok {
			snap.ScreenshotB64 = &b64
		}
	}
	if fw, ok := capData["focused_window"].(string); ok {
		snap.FocusedWindow = &fw
	}
	if ts, ok := capData["ts_ms"].(int64); ok {
		snap.TsMs = ts
	}

	if deps.PreferUIATree && deps.Executor.Has(tooling.UIATree) {
		uiaArgs := map[string]any{"scope": "focused_window"}
		uia := deps.Executor.Call(ctx, s, state.ToolCall{
			Name: tooling.UIATree, Args: uiaArgs,
			IdempotencyKey: toolCallKey(s, step, string(tooling.UIATree), uiaArgs, snap.ScreenshotHash),
			TimeoutMs:      30_000,
		})
		if uia.OK {
			if tree, ok := uia.Data.(map[string]any); ok {
				snap.UIATree = tree
			}
		}
	}

	needVision := true
	if v, ok := s.Scratch["need_vision"].(bool); ok {
		needVision = v
	}
	if deps.OmniparserEnabled && needVision && deps.Executor.Has(tooling.OmniparserV2Parse) {
		omniArgs := map[string]any{
			"image_b64":  snap.ScreenshotB64,
			"image_hash": snap.ScreenshotHash,
			"context": map[string]any{
				"goal": s.Goal,
				"step": map[string]any{
					"id": step.ID, "title": step.Title, "intent": step.Intent,
					"success_criteria": step.SuccessCriteria,
				},
				"focused_window": snap.FocusedWindow,
			},
		}
		omniIdemArgs := map[string]any{"image_hash": snap.ScreenshotHash, "step_id": step.ID}
		omni := deps.Executor.Call(ctx, s, state.ToolCall{
			Name: tooling.OmniparserV2Parse, Args: omniArgs,
			IdempotencyKey: toolCallKey(s, step, string(tooling.OmniparserV2Parse), omniIdemArgs, ""),
			TimeoutMs:      60_000,
		})
		if omni.OK {
			switch data := omni.Data.(type) {
			case map[string]any:
				snap.Elements = toElementSlice(data["elements"])
			default:
				snap.Elements = toElementSlice(omni.Data)
			}
		} else {
			s.Telemetry.Event("omniparser_failed", map[string]any{"error": omni.Error})
		}
	}

	s.Perception = snap
	s.Status = state.StatusPolicyCheck
	s.Telemetry.Event("perceived", map[string]any{
		"screenshot_hash":      snap.ScreenshotHash,
		"elements":             len(snap.Elements),
		"has_uia_tree":         snap.UIATree != nil,
		"focused_window":       snap.FocusedWindow,
		"store_screenshot_b64": deps.StoreScreenshotB64,
	})
	return s
}

// PolicyCheck gates HIGH-risk steps behind human approval when
// Policy.RequireApprovalForHighRisk is set, otherwise proceeds to ACTING.
func PolicyCheck(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	_, span := deps.tracer().Start(ctx, "node.policy_check")
	defer span.End()
	sp := s.Telemetry.Span("node_policy_check", nil)
	defer sp.Close()

	if !ensurePlan(s) {
		return terminalFail(s, "Policy check called without a valid plan", state.ErrNoPlan)
	}

	step := s.Plan.Current()

	if s.Policy.RequireApprovalForHighRisk && step.Risk == state.RiskHigh {
		if !s.Approved {
			s.RequiresHumanApproval = true
			s.Status = state.StatusWaitingApproval
			s.Policy.LastDecision = strPtr("REQUIRE_APPROVAL")
			s.Telemetry.Event("approval_required", map[string]any{"step_id": step.ID, "risk": string(step.Risk)})
			return s
		}
	}

	s.RequiresHumanApproval = false
	s.Policy.LastDecision = strPtr("ALLOW")
	s.Status = state.StatusActing
	s.Telemetry.Event("policy_allowed", map[string]any{"step_id": step.ID, "risk": string(step.Risk)})
	return s
}

// Act executes the ToolCalls produced by the injected ActionSelector,
// recording each as an ActionRecord. A runtime POLICY_DENY escalates the
// run immediately; any other failure routes to RECOVERING.
func Act(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	ctx, span := deps.tracer().Start(ctx, "node.act")
	defer span.End()
	sp := s.Telemetry.Span("node_act", nil)
	defer sp.Close()

	if !ensurePlan(s) {
		return terminalFail(s, "Act called without a valid plan", state.ErrNoPlan)
	}
	if s.Perception == nil {
		s.Telemetry.Event("act_missing_perception", nil)
		s.Status = state.StatusRecovering
		return s
	}
	if stepTimeoutExceeded(s) {
		return terminalFail(s, "Step timeout exceeded (act)", state.ErrStepTimeout)
	}

	step := s.Plan.Current()
	calls := deps.ActionSelector(ctx, s, deps.Tooling)
	if len(calls) == 0 {
		s.Telemetry.Event("no_actions_selected", map[string]any{"step_id": step.ID})
		s.Status = state.StatusRecovering
		return s
	}

	for _, call := range calls {
		started := state.NowMs()
		res := deps.Executor.Call(ctx, s, call)
		ended := state.NowMs()

		var effectFP *string
		if deps.PostActionCapture && deps.Executor.Has(deps.Tooling.ScreenCapture) {
			pcArgs := map[string]any{"return_b64": false}
			pc := deps.Executor.Call(ctx, s, state.ToolCall{
				Name: deps.Tooling.ScreenCapture, Args: pcArgs,
				IdempotencyKey: call.IdempotencyKey + ":postcap",
				TimeoutMs:      20_000,
			})
			if pc.OK {
				if data, ok := pc.Data.(map[string]any); ok {
					if hash, ok := data["hash"].(string); ok {
						effectFP = &hash
					}
				}
			}
		}

		var errPtr *string
		if res.Error != "" {
			errPtr = &res.Error
		}
		recordAction(s, state.ActionRecord{
			Tool: call.Name, Args: call.Args, IdempotencyKey: call.IdempotencyKey,
			StartedMs: started, EndedMs: int64Ptr(ended), OK: boolPtr(res.OK),
			Error: errPtr, EffectFingerprint: effectFP,
		})

		if !res.OK {
			if isPolicyDeny(res.Error) {
				s.Telemetry.Event("policy_denied_runtime", map[string]any{
					"step_id": step.ID, "tool": string(call.Name), "error": res.Error,
				})
				return terminalEscalate(s, "Policy denied tool at runtime: "+res.Error, state.ErrPolicyDeny)
			}
			s.Telemetry.Event("action_failed", map[string]any{
				"step_id": step.ID, "tool": string(call.Name), "error": res.Error,
			})
			s.Status = state.StatusRecovering
			return s
		}
	}

	s.Status = state.StatusVerifying
	s.Telemetry.Event("actions_completed", map[string]any{"step_id": step.ID, "action_count": len(calls)})
	return s
}

// Verify judges the current step via the injected Verifier and either
// advances the plan (completing the run on the last step) or routes to
// RECOVERING.
func Verify(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	ctx, span := deps.tracer().Start(ctx, "node.verify")
	defer span.End()
	sp := s.Telemetry.Span("node_verify", nil)
	defer sp.Close()

	if !ensurePlan(s) {
		return terminalFail(s, "Verify called without a valid plan", state.ErrNoPlan)
	}
	if s.Perception == nil {
		s.Status = state.StatusRecovering
		return s
	}
	if stepTimeoutExceeded(s) {
		return terminalFail(s, "Step timeout exceeded (verify)", state.ErrStepTimeout)
	}

	step := s.Plan.Current()
	ok, details := deps.Verifier(ctx, s, deps.Tooling)
	s.Scratch["verify_details"] = details
	s.Telemetry.Event("step_verified", map[string]any{"step_id": step.ID, "ok": ok, "details": details})

	if ok {
		finished := s.Plan.Advance()
		if finished {
			return terminalDone(s, "All steps completed")
		}
		ms := state.NowMs()
		s.LastStepStartedMs = &ms
		s.Status = state.StatusPerceiving
		return s
	}

	s.Status = state.StatusRecovering
	return s
}

// Recover consumes one retry-budget unit and runs the injected Recovery
// collaborator's ToolCalls, failing the run outright once the budget (global
// or per-step) is exhausted, or if the Recovery collaborator itself errors.
func Recover(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	ctx, span := deps.tracer().Start(ctx, "node.recover")
	defer span.End()
	sp := s.Telemetry.Span("node_recover", nil)
	defer sp.Close()

	if !ensurePlan(s) {
		return terminalFail(s, "Recover called without a valid plan", state.ErrNoPlan)
	}

	step := s.Plan.Current()

	if !s.Retry.CanRetryStep(step.ID, step.MaxRetries) {
		s.Telemetry.Event("retry_exhausted", map[string]any{
			"step_id":      step.ID,
			"total_used":   s.Retry.Used,
			"total_budget": s.Retry.TotalBudget,
			"step_used":    s.Retry.StepRetryCounts[step.ID],
			"step_max":     step.MaxRetries,
		})
		return terminalFail(s, "Retry exhausted for step "+step.ID, state.ErrRetryExhausted)
	}

	s.Retry.Consume(step.ID)
	s.Telemetry.Event("recover_attempt", map[string]any{
		"step_id":    step.ID,
		"total_used": s.Retry.Used,
		"step_used":  s.Retry.StepRetryCounts[step.ID],
	})

	calls, err := deps.Recovery(ctx, s, deps.Tooling)
	if err != nil {
		s.Telemetry.Event("recovery_error", map[string]any{"step_id": step.ID, "error": err.Error()})
		return terminalFail(s, "Recovery error: "+err.Error(), state.ErrRecoveryError)
	}

	for _, call := range calls {
		started := state.NowMs()
		res := deps.Executor.Call(ctx, s, call)
		ended := state.NowMs()

		var errPtr *string
		if res.Error != "" {
			errPtr = &res.Error
		}
		recordAction(s, state.ActionRecord{
			Tool: call.Name, Args: call.Args, IdempotencyKey: call.IdempotencyKey,
			StartedMs: started, EndedMs: int64Ptr(ended), OK: boolPtr(res.OK), Error: errPtr,
		})

		if !res.OK && isPolicyDeny(res.Error) {
			return terminalEscalate(s, "Policy denied recovery tool: "+res.Error, state.ErrPolicyDeny)
		}
	}

	s.Status = state.StatusPerceiving
	return s
}

// WaitingApproval is a pass-through node: it re-asserts WAITING_APPROVAL
// and records the current Approved flag. While Approved is false the router
// ends the Run call, pausing the run; a host sets Approved=true and calls
// Run again, which re-enters here and proceeds to policy_check.
func WaitingApproval(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	_, span := deps.tracer().Start(ctx, "node.waiting_approval")
	defer span.End()
	sp := s.Telemetry.Span("node_waiting_approval", nil)
	defer sp.Close()

	s.Status = state.StatusWaitingApproval
	s.Telemetry.Event("waiting_approval", map[string]any{"approved": s.Approved})
	return s
}

// Finalize records a last telemetry snapshot. It performs no further state
// transition; status is already terminal by the time this node runs.
func Finalize(ctx context.Context, s *state.AgentState, deps Deps) *state.AgentState {
	_, span := deps.tracer().Start(ctx, "node.finalize")
	defer span.End()
	sp := s.Telemetry.Span("node_finalize", nil)
	defer sp.Close()

	var planFingerprint string
	if s.Plan != nil {
		planFingerprint = s.Plan.PlanFingerprint
	}
	s.Telemetry.Event("finalize", map[string]any{
		"status":           string(s.Status),
		"done_reason":      s.DoneReason,
		"action_count":     len(s.Actions),
		"plan_fingerprint": planFingerprint,
	})
	return s
}

func isPolicyDeny(errMsg string) bool {
	return len(errMsg) >= len(state.ErrPolicyDeny) && errMsg[:len(state.ErrPolicyDeny)] == string(state.ErrPolicyDeny)
}
