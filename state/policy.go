package state

import "github.com/novaagent/core/tools"

// PolicyContext is enforced by policy.Engine plus the approval-gating nodes.
// ToolAllowlist, if non-empty, restricts calls to exactly those aliases;
// ToolDenylist is always checked and always wins over the allowlist.
type PolicyContext struct {
	ToolAllowlist              []tools.Ident `json:"tool_allowlist,omitempty"`
	ToolDenylist               []tools.Ident `json:"tool_denylist,omitempty"`
	RequireApprovalForHighRisk bool          `json:"require_approval_for_high_risk"`
	LastDecision               *string       `json:"last_decision,omitempty"`
	DenyReason                 *string       `json:"deny_reason,omitempty"`
}

// RetryBudget gates recovery attempts with both a whole-run total, compared
// against TotalBudget, and a per-step count, compared against the step's own
// MaxRetries.
type RetryBudget struct {
	TotalBudget     int            `json:"total_budget"`
	Used            int            `json:"used"`
	StepRetryCounts map[string]int `json:"step_retry_counts,omitempty"`
}

// NewRetryBudget returns a RetryBudget with the package default of 8 total
// recovery attempts for the whole run.
func NewRetryBudget() RetryBudget {
	return RetryBudget{TotalBudget: 8, StepRetryCounts: map[string]int{}}
}

// CanRetryStep reports whether stepID may retry again: the global budget
// must not be spent, and the step's own count must be under stepMax.
func (r *RetryBudget) CanRetryStep(stepID string, stepMax int) bool {
	if r.Used >= r.TotalBudget {
		return false
	}
	return r.StepRetryCounts[stepID] < stepMax
}

// Consume records one retry attempt against both the global and per-step
// counters.
func (r *RetryBudget) Consume(stepID string) {
	if r.StepRetryCounts == nil {
		r.StepRetryCounts = map[string]int{}
	}
	r.Used++
	r.StepRetryCounts[stepID]++
}
