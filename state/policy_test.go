package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryBudget_CanRetryStep(t *testing.T) {
	rb := NewRetryBudget()
	assert.True(t, rb.CanRetryStep("s1", 2))

	rb.Consume("s1")
	assert.True(t, rb.CanRetryStep("s1", 2))

	rb.Consume("s1")
	assert.False(t, rb.CanRetryStep("s1", 2), "per-step cap reached")
}

func TestRetryBudget_GlobalBudgetWins(t *testing.T) {
	rb := NewRetryBudget()
	rb.TotalBudget = 1
	rb.Consume("s1")
	assert.False(t, rb.CanRetryStep("s2", 10), "global budget spent even though s2 has its own headroom")
}

func TestRetryBudget_PerStepIndependent(t *testing.T) {
	rb := NewRetryBudget()
	rb.Consume("s1")
	rb.Consume("s1")
	assert.True(t, rb.CanRetryStep("s2", 1), "s2's count is independent of s1's")
}
