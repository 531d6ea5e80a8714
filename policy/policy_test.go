package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

func TestAllowDenyEngine_NoListsAllowsEverything(t *testing.T) {
	eng := New()
	d := eng.Decide(context.Background(), state.PolicyContext{}, "click")
	assert.True(t, d.Allowed)
}

func TestAllowDenyEngine_DenylistAlwaysWins(t *testing.T) {
	eng := New()
	pc := state.PolicyContext{
		ToolAllowlist: []tools.Ident{"click"},
		ToolDenylist:  []tools.Ident{"click"},
	}
	d := eng.Decide(context.Background(), pc, "click")
	assert.False(t, d.Allowed)
	assert.Equal(t, state.ErrPolicyDenyDenylist, d.Code)
}

func TestAllowDenyEngine_AllowlistRestricts(t *testing.T) {
	eng := New()
	pc := state.PolicyContext{ToolAllowlist: []tools.Ident{"click"}}

	allowed := eng.Decide(context.Background(), pc, "click")
	assert.True(t, allowed.Allowed)

	denied := eng.Decide(context.Background(), pc, "type_text")
	assert.False(t, denied.Allowed)
	assert.Equal(t, state.ErrPolicyDenyAllowlist, denied.Code)
}
