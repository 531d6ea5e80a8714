package state

// ErrorCode is a closed vocabulary of terminal and soft-failure reasons
// surfaced on AgentState.Telemetry.ErrorCode and ActionRecord.Error. Nodes
// never return a Go error for these — they are state-machine outcomes, not
// exceptional control flow.
type ErrorCode string

const (
	// ErrDone marks a successful terminal run.
	ErrDone ErrorCode = "DONE"
	// ErrEscalated marks a run halted for human intervention.
	ErrEscalated ErrorCode = "ESCALATED"

	// ErrPlanInvalid means the planner returned an empty or malformed plan.
	ErrPlanInvalid ErrorCode = "PLAN_INVALID"
	// ErrPlanError means the planner collaborator returned an error.
	ErrPlanError ErrorCode = "PLAN_ERROR"
	// ErrNoPlan means a node that requires an active plan was entered without one.
	ErrNoPlan ErrorCode = "NO_PLAN"

	// ErrStepTimeout means the current step exceeded its wall-clock budget.
	ErrStepTimeout ErrorCode = "STEP_TIMEOUT"

	// ErrToolMissing means a required tool alias has no registered backend.
	ErrToolMissing ErrorCode = "TOOL_MISSING"
	// ErrToolNotFound means the registry has no mapping at all for an alias.
	ErrToolNotFound ErrorCode = "TOOL_NOT_FOUND"
	// ErrMCPNotConfigured means an alias resolves to a remote name but no
	// remote client was injected.
	ErrMCPNotConfigured ErrorCode = "MCP_NOT_CONFIGURED"

	// ErrPolicyDenyAllowlist means a tool call was refused for not being on
	// a non-empty allowlist.
	ErrPolicyDenyAllowlist ErrorCode = "POLICY_DENY:allowlist"
	// ErrPolicyDenyDenylist means a tool call was refused for appearing on
	// the denylist.
	ErrPolicyDenyDenylist ErrorCode = "POLICY_DENY:denylist"
	// ErrPolicyDeny is the runtime (tool-returned) denial, always terminal.
	ErrPolicyDeny ErrorCode = "POLICY_DENY"

	// ErrRetryExhausted means the retry budget (global or per-step) is spent.
	ErrRetryExhausted ErrorCode = "RETRY_EXHAUSTED"
	// ErrRecoveryError means the recovery collaborator itself errored.
	ErrRecoveryError ErrorCode = "RECOVERY_ERROR"
)

// String implements fmt.Stringer.
func (c ErrorCode) String() string { return string(c) }
