package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novaagent/core/state"
)

func newState(status state.Status) *state.AgentState {
	s := state.New("goal")
	s.Status = status
	return s
}

func TestFromInitialize(t *testing.T) {
	assert.Equal(t, Plan, FromInitialize(newState(state.StatusInit)))
	assert.Equal(t, Finalize, FromInitialize(newState(state.StatusDone)))
}

func TestFromPlan(t *testing.T) {
	assert.Equal(t, Perceive, FromPlan(newState(state.StatusPerceiving)))
	assert.Equal(t, Recover, FromPlan(newState(state.StatusActing)), "unexpected status falls back to recover")
	assert.Equal(t, Finalize, FromPlan(newState(state.StatusFailed)))
}

func TestFromPerceive(t *testing.T) {
	assert.Equal(t, PolicyCheck, FromPerceive(newState(state.StatusPolicyCheck)))
	assert.Equal(t, Recover, FromPerceive(newState(state.StatusRecovering)))
	assert.Equal(t, Recover, FromPerceive(newState(state.StatusActing)), "unexpected status default")
}

func TestFromPolicyCheck(t *testing.T) {
	assert.Equal(t, WaitingApproval, FromPolicyCheck(newState(state.StatusWaitingApproval)))
	assert.Equal(t, Act, FromPolicyCheck(newState(state.StatusActing)))
	assert.Equal(t, Recover, FromPolicyCheck(newState(state.StatusPerceiving)))
}

func TestFromWaitingApproval(t *testing.T) {
	s := newState(state.StatusWaitingApproval)
	assert.Equal(t, End, FromWaitingApproval(s), "not approved pauses the run instead of busy-looping")
	s.Approved = true
	assert.Equal(t, PolicyCheck, FromWaitingApproval(s))
}

func TestFromAct_ForceReplan(t *testing.T) {
	s := newState(state.StatusRecovering)
	assert.Equal(t, Recover, FromAct(s))
	s.Scratch["force_replan"] = true
	assert.Equal(t, Plan, FromAct(s))
}

func TestFromAct_Verifying(t *testing.T) {
	assert.Equal(t, Verify, FromAct(newState(state.StatusVerifying)))
}

func TestFromVerify_ForceReplan(t *testing.T) {
	s := newState(state.StatusRecovering)
	s.Scratch["force_replan"] = true
	assert.Equal(t, Plan, FromVerify(s))

	s2 := newState(state.StatusPerceiving)
	assert.Equal(t, Perceive, FromVerify(s2))
}

func TestFromRecover(t *testing.T) {
	assert.Equal(t, Perceive, FromRecover(newState(state.StatusPerceiving)))

	s := newState(state.StatusActing)
	assert.Equal(t, Perceive, FromRecover(s), "defaults to perceive without force_replan")
	s.Scratch["force_replan"] = true
	assert.Equal(t, Plan, FromRecover(s))
}

func TestFromFinalize_AlwaysEnds(t *testing.T) {
	assert.Equal(t, End, FromFinalize(newState(state.StatusDone)))
}

func TestByStatus_TerminalAlwaysFinalizes(t *testing.T) {
	for _, st := range []state.Status{state.StatusDone, state.StatusFailed, state.StatusEscalated} {
		assert.Equal(t, Finalize, ByStatus(newState(st)))
	}
}

func TestByStatus_EveryNonTerminalStatusMapsSomewhere(t *testing.T) {
	cases := map[state.Status]string{
		state.StatusWaitingApproval: WaitingApproval,
		state.StatusPlanning:        Plan,
		state.StatusPerceiving:      Perceive,
		state.StatusPolicyCheck:     PolicyCheck,
		state.StatusActing:          Act,
		state.StatusVerifying:       Verify,
		state.StatusRecovering:      Recover,
	}
	for status, want := range cases {
		assert.Equal(t, want, ByStatus(newState(status)), "status %s", status)
	}
}
