package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New("open settings")
	assert.Equal(t, StatusInit, s.Status)
	assert.Equal(t, 8, s.Retry.TotalBudget)
	assert.Empty(t, s.RunID)
}

func TestEnsureRunID_IdempotentAndNonEmpty(t *testing.T) {
	s := New("goal")
	s.EnsureRunID()
	id := s.RunID
	require.NotEmpty(t, id)
	s.EnsureRunID()
	assert.Equal(t, id, s.RunID, "a second call must not mint a new id")
}

func TestEnsurePolicyDefaults_OnlyAppliesWhenBothListsEmpty(t *testing.T) {
	s := New("goal")
	s.EnsurePolicyDefaults()
	assert.NotEmpty(t, s.Policy.ToolDenylist)
	assert.True(t, s.Policy.RequireApprovalForHighRisk)
}

func TestEnsurePolicyDefaults_RespectsHostSuppliedPolicy(t *testing.T) {
	s := New("goal")
	s.Policy.ToolAllowlist = append(s.Policy.ToolAllowlist, "click")
	s.EnsurePolicyDefaults()
	assert.Empty(t, s.Policy.ToolDenylist, "a host-supplied allowlist must not be overwritten")
}

func TestSetTerminal_Done(t *testing.T) {
	s := New("goal")
	s.SetTerminal(StatusDone, "all steps completed", ErrDone)
	assert.Equal(t, StatusDone, s.Status)
	assert.Nil(t, s.Telemetry.LastError)
	require.NotNil(t, s.Telemetry.ErrorCode)
	assert.Equal(t, "DONE", *s.Telemetry.ErrorCode)
}

func TestSetTerminal_Failed(t *testing.T) {
	s := New("goal")
	s.SetTerminal(StatusFailed, "retry exhausted", ErrRetryExhausted)
	require.NotNil(t, s.Telemetry.LastError)
	assert.Equal(t, "retry exhausted", *s.Telemetry.LastError)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDone.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusEscalated.IsTerminal())
	assert.False(t, StatusActing.IsTerminal())
}
