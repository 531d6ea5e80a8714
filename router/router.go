// Package router implements the execution core's conditional routing: pure
// functions from an AgentState to the name of the next node. Routers never
// call a tool, never mutate state, and never perform I/O — package nodes does
// the work, router.go only reads state.Status (and the force_replan/approved
// flags) to pick the next step.
package router

import "github.com/novaagent/core/state"

// Node name constants, shared by engine.NodeDefinition registration and
// every router function below.
const (
	Initialize      = "initialize"
	Plan            = "plan"
	Perceive        = "perceive"
	PolicyCheck     = "policy_check"
	Act             = "act"
	Verify          = "verify"
	Recover         = "recover"
	WaitingApproval = "waiting_approval"
	Finalize        = "finalize"
	End             = ""
)

func isTerminal(s *state.AgentState) bool { return s.Status.IsTerminal() }

func forceReplan(s *state.AgentState) bool {
	v, _ := s.Scratch["force_replan"].(bool)
	return v
}

// FromInitialize always proceeds to planning; a terminal status (set by a
// host before the run even starts) short-circuits to Finalize.
func FromInitialize(s *state.AgentState) string {
	if isTerminal(s) {
		return Finalize
	}
	return Plan
}

// FromPlan proceeds to Perceive on a successful plan and to Finalize on a
// failed (terminal) one; any other status falls back to Recover.
func FromPlan(s *state.AgentState) string {
	if isTerminal(s) {
		return Finalize
	}
	if s.Status == state.StatusPerceiving {
		return Perceive
	}
	return Recover
}

// FromPerceive proceeds to PolicyCheck or Recover; any unexpected status
// falls back to Recover as the safe default.
func FromPerceive(s *state.AgentState) string {
	if isTerminal(s) {
		return Finalize
	}
	switch s.Status {
	case state.StatusPolicyCheck:
		return PolicyCheck
	case state.StatusRecovering:
		return Recover
	default:
		return Recover
	}
}

// FromPolicyCheck proceeds to WaitingApproval, Act, or (unexpectedly) Recover.
func FromPolicyCheck(s *state.AgentState) string {
	if isTerminal(s) {
		return Finalize
	}
	switch s.Status {
	case state.StatusWaitingApproval:
		return WaitingApproval
	case state.StatusActing:
		return Act
	default:
		return Recover
	}
}

// FromWaitingApproval returns to PolicyCheck once the host sets Approved;
// otherwise it returns End, pausing the run in place rather than busy-looping
// the engine. A host resumes by calling Run again with the same state — the
// run re-enters at WaitingApproval and re-checks Approved.
func FromWaitingApproval(s *state.AgentState) string {
	if isTerminal(s) {
		return Finalize
	}
	if s.Approved {
		return PolicyCheck
	}
	return End
}

// FromAct proceeds to Verify or Recover, honoring the force_replan hook.
func FromAct(s *state.AgentState) string {
	if isTerminal(s) {
		return Finalize
	}
	switch s.Status {
	case state.StatusVerifying:
		return Verify
	case state.StatusRecovering:
		if forceReplan(s) {
			return Plan
		}
		return Recover
	default:
		return Recover
	}
}

// FromVerify proceeds to Perceive (next step) or Recover, honoring the
// force_replan hook.
func FromVerify(s *state.AgentState) string {
	if isTerminal(s) {
		return Finalize
	}
	switch s.Status {
	case state.StatusPerceiving:
		return Perceive
	case state.StatusRecovering:
		if forceReplan(s) {
			return Plan
		}
		return Recover
	default:
		return Recover
	}
}

// FromRecover proceeds to Perceive after a recovery attempt, or to Plan if
// recovery requested a replan.
func FromRecover(s *state.AgentState) string {
	if isTerminal(s) {
		return Finalize
	}
	if forceReplan(s) {
		return Plan
	}
	return Perceive
}

// FromFinalize always ends the run.
func FromFinalize(_ *state.AgentState) string {
	return End
}

// ByStatus is the generic one-shot router: fewer call sites than the
// per-node functions above, at the cost of not reflecting which node just
// ran. Either style drives the same graph; callers pick one.
func ByStatus(s *state.AgentState) string {
	switch s.Status {
	case state.StatusDone, state.StatusFailed, state.StatusEscalated:
		return Finalize
	case state.StatusWaitingApproval:
		return WaitingApproval
	case state.StatusPlanning:
		return Plan
	case state.StatusPerceiving:
		return Perceive
	case state.StatusPolicyCheck:
		return PolicyCheck
	case state.StatusActing:
		return Act
	case state.StatusVerifying:
		return Verify
	case state.StatusRecovering:
		return Recover
	default:
		return Recover
	}
}
