package state

import (
	"github.com/novaagent/core/fingerprint"
	"github.com/novaagent/core/tools"
)

// Risk is a step's approval-gating risk tier.
type Risk string

const (
	RiskLow    Risk = "LOW"
	RiskMedium Risk = "MEDIUM"
	RiskHigh   Risk = "HIGH"
)

// Step is a single, explicit unit of plan execution. SuccessCriteria should
// be machine-verifiable (element visible, text present, etc). ToolsAllowed
// is a local hint only — final enforcement always runs through policy.Engine.
type Step struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Intent          string        `json:"intent"`
	SuccessCriteria []string      `json:"success_criteria,omitempty"`
	ToolsAllowed    []tools.Ident `json:"tools_allowed,omitempty"`
	Risk            Risk          `json:"risk"`
	MaxRetries      int           `json:"max_retries"`
	TimeoutMs       int64         `json:"timeout_ms"`
}

// NewStep builds a Step with the package defaults (LOW risk, 2 retries,
// 90s timeout) that callers can override field by field.
func NewStep(id, title, intent string) Step {
	return Step{
		ID:         id,
		Title:      title,
		Intent:     intent,
		Risk:       RiskLow,
		MaxRetries: 2,
		TimeoutMs:  90_000,
	}
}

// Plan is an ordered, fingerprinted sequence of Steps plus a cursor onto the
// step currently executing.
type Plan struct {
	Objective       string `json:"objective"`
	Steps           []Step `json:"steps"`
	CurrentStepIdx  int    `json:"current_step_idx"`
	PlanFingerprint string `json:"plan_fingerprint,omitempty"`
}

// Finalize computes and caches PlanFingerprint if not already set, and
// returns the receiver for chaining. The fingerprint covers every field
// that defines step semantics, so a re-planned but textually identical plan
// fingerprints the same.
func (p *Plan) Finalize() *Plan {
	if p.PlanFingerprint != "" {
		return p
	}
	steps := make([]map[string]any, len(p.Steps))
	for i, s := range p.Steps {
		toolsAllowed := make([]string, len(s.ToolsAllowed))
		for j, t := range s.ToolsAllowed {
			toolsAllowed[j] = string(t)
		}
		steps[i] = map[string]any{
			"id":               s.ID,
			"title":            s.Title,
			"intent":           s.Intent,
			"success_criteria": s.SuccessCriteria,
			"tools_allowed":    toolsAllowed,
			"risk":             string(s.Risk),
			"max_retries":      s.MaxRetries,
			"timeout_ms":       s.TimeoutMs,
		}
	}
	p.PlanFingerprint = fingerprint.Stable(map[string]any{
		"objective": p.Objective,
		"steps":     steps,
	})
	return p
}

// IsValid reports whether the plan has at least one step and the cursor
// points inside it.
func (p *Plan) IsValid() bool {
	return len(p.Steps) > 0 && p.CurrentStepIdx >= 0 && p.CurrentStepIdx < len(p.Steps)
}

// Current returns the step the cursor points to. Callers must check
// IsValid first; Current panics on an out-of-range cursor since that
// signals a wiring bug, not a runtime condition nodes should route around.
func (p *Plan) Current() Step {
	return p.Steps[p.CurrentStepIdx]
}

// Advance moves the cursor to the next step and reports whether the plan
// has been fully consumed (cursor now past the last step).
func (p *Plan) Advance() bool {
	p.CurrentStepIdx++
	return p.CurrentStepIdx >= len(p.Steps)
}
