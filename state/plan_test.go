package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() *Plan {
	return &Plan{
		Objective: "open settings and enable dark mode",
		Steps: []Step{
			NewStep("s1", "open settings", "click the settings icon"),
			NewStep("s2", "enable dark mode", "toggle the dark mode switch"),
		},
	}
}

func TestPlan_FinalizeIsStableAndCached(t *testing.T) {
	p := samplePlan()
	p.Finalize()
	fp := p.PlanFingerprint
	require.NotEmpty(t, fp)

	p.Finalize() // second call must not recompute
	assert.Equal(t, fp, p.PlanFingerprint)

	other := samplePlan()
	other.Finalize()
	assert.Equal(t, fp, other.PlanFingerprint, "identical plans fingerprint identically")
}

func TestPlan_FinalizeDiffersOnContentChange(t *testing.T) {
	a := samplePlan()
	a.Finalize()

	b := samplePlan()
	b.Steps[1].Title = "enable light mode"
	b.Finalize()

	assert.NotEqual(t, a.PlanFingerprint, b.PlanFingerprint)
}

func TestPlan_IsValid(t *testing.T) {
	p := samplePlan()
	assert.True(t, p.IsValid())

	p.CurrentStepIdx = 2
	assert.False(t, p.IsValid())

	empty := &Plan{}
	assert.False(t, empty.IsValid())
}

func TestPlan_Advance(t *testing.T) {
	p := samplePlan()
	assert.Equal(t, "s1", p.Current().ID)

	finished := p.Advance()
	assert.False(t, finished)
	assert.Equal(t, "s2", p.Current().ID)

	finished = p.Advance()
	assert.True(t, finished)
}

func TestNewStep_Defaults(t *testing.T) {
	s := NewStep("s1", "t", "i")
	assert.Equal(t, RiskLow, s.Risk)
	assert.Equal(t, 2, s.MaxRetries)
	assert.Equal(t, int64(90_000), s.TimeoutMs)
}
