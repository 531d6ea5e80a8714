package nodes

import (
	"github.com/novaagent/core/telemetry"
	"github.com/novaagent/core/tools"
)

// Deps bundles everything a node needs beyond the AgentState it mutates:
// the injected collaborators (executor, planner, selector, verifier,
// recovery), the tool alias table, perception policy flags, and the
// ambient observability surface.
type Deps struct {
	Executor ToolExecutor
	Tooling  tools.ToolingConfig

	Planner        Planner
	ActionSelector ActionSelector
	Verifier       Verifier
	Recovery       Recovery

	// StoreScreenshotB64, when true, carries the raw screenshot through
	// PerceptionSnapshot.ScreenshotB64 instead of hash-only. Prefer false in
	// production; true only for debug/replay.
	StoreScreenshotB64 bool
	// PreferUIATree requests a UI Automation tree snapshot when the tool
	// alias is wired, ahead of an OmniParser pass.
	PreferUIATree bool
	// OmniparserEnabled gates whether vision parsing runs at all; a step can
	// still skip it per-run via AgentState.Scratch["need_vision"]=false.
	OmniparserEnabled bool
	// PostActionCapture, when true, takes a hash-only screenshot after each
	// action and records it as ActionRecord.EffectFingerprint.
	PostActionCapture bool

	Tracer telemetry.Tracer
	Logger telemetry.Logger
}

func (d Deps) tracer() telemetry.Tracer {
	if d.Tracer != nil {
		return d.Tracer
	}
	return telemetry.NewNoopTracer()
}
