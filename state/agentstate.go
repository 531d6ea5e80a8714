package state

import (
	"github.com/google/uuid"

	"github.com/novaagent/core/tools"
)

// Status is a node in the agent's finite-state machine.
type Status string

const (
	StatusInit            Status = "INIT"
	StatusPlanning        Status = "PLANNING"
	StatusPerceiving      Status = "PERCEIVING"
	StatusPolicyCheck     Status = "POLICY_CHECK"
	StatusActing          Status = "ACTING"
	StatusVerifying       Status = "VERIFYING"
	StatusRecovering      Status = "RECOVERING"
	StatusWaitingApproval Status = "WAITING_APPROVAL"
	StatusDone            Status = "DONE"
	StatusFailed          Status = "FAILED"
	StatusEscalated       Status = "ESCALATED"
)

// IsTerminal reports whether s is one of the three run-ending statuses.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed || s == StatusEscalated
}

// AgentState is the single mutable object threaded through every node and
// router. Scratch is transient working memory for the injected
// planner/verifier/action-selector collaborators; it is safe to clear
// between runs and is serialized with the rest of the state.
type AgentState struct {
	RunID string `json:"run_id"`
	Goal  string `json:"goal"`

	Status Status `json:"status"`

	Plan       *Plan               `json:"plan,omitempty"`
	Perception *PerceptionSnapshot `json:"perception,omitempty"`
	Actions    []ActionRecord      `json:"actions,omitempty"`

	Policy    PolicyContext `json:"policy"`
	Retry     RetryBudget   `json:"retry"`
	Telemetry Telemetry     `json:"telemetry"`

	RequiresHumanApproval bool `json:"requires_human_approval"`
	Approved              bool `json:"approved"`

	LastStepStartedMs *int64 `json:"last_step_started_ms,omitempty"`
	DoneReason        string `json:"done_reason,omitempty"`

	Scratch map[string]any `json:"scratch,omitempty"`
}

// New constructs an AgentState ready for the initialize node: status INIT,
// a fresh RetryBudget, and an empty scratch map.
func New(goal string) *AgentState {
	return &AgentState{
		Goal:    goal,
		Status:  StatusInit,
		Retry:   NewRetryBudget(),
		Scratch: map[string]any{},
	}
}

// EnsureRunID assigns a run id if one is not already set.
func (s *AgentState) EnsureRunID() {
	if s.RunID == "" {
		s.RunID = "run_" + uuid.New().String()[:12]
	}
}

// EnsurePolicyDefaults installs a minimal safe policy — a denylist covering
// destructive local operations and mandatory approval for high-risk steps —
// when the caller hasn't configured either list. Callers wanting a looser
// or stricter policy should set Policy before the first PolicyContext is
// ensured.
func (s *AgentState) EnsurePolicyDefaults() {
	if len(s.Policy.ToolAllowlist) == 0 && len(s.Policy.ToolDenylist) == 0 {
		s.Policy.ToolDenylist = []tools.Ident{"file_delete", "process_kill", "registry_write"}
		s.Policy.RequireApprovalForHighRisk = true
	}
}

// SetTerminal moves the run to a terminal status, recording the reason and
// error code on Telemetry and emitting a "terminal" event. LastError is
// populated only for FAILED/ESCALATED; a DONE run clears it.
func (s *AgentState) SetTerminal(status Status, reason string, code ErrorCode) {
	s.Status = status
	s.DoneReason = reason
	codeStr := code.String()
	if status == StatusFailed || status == StatusEscalated {
		s.Telemetry.LastError = &reason
	} else {
		s.Telemetry.LastError = nil
	}
	s.Telemetry.ErrorCode = &codeStr
	s.Telemetry.Event("terminal", map[string]any{
		"status": string(status),
		"reason": reason,
		"code":   codeStr,
	})
}
