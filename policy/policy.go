// Package policy decides whether a tool call may proceed given a run's
// PolicyContext. It is consulted by executor.Executor before every
// dispatch; the policy_check node's high-risk approval gate does not go
// through it.
package policy

import (
	"context"

	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

// Decision is the outcome of evaluating one tool call against policy.
type Decision struct {
	Allowed bool
	Reason  string
	Code    state.ErrorCode
}

// Engine evaluates whether alias may be dispatched under pc.
type Engine interface {
	Decide(ctx context.Context, pc state.PolicyContext, alias tools.Ident) Decision
}

// AllowDenyEngine implements the fixed allowlist/denylist semantics carried
// on PolicyContext: an empty allowlist means no restriction; the denylist
// always wins regardless of the allowlist.
type AllowDenyEngine struct{}

// New constructs an AllowDenyEngine. It takes no options: PolicyContext
// itself carries the allow/deny state, so there is nothing to configure at
// construction time.
func New() *AllowDenyEngine { return &AllowDenyEngine{} }

// Decide implements Engine.
func (AllowDenyEngine) Decide(_ context.Context, pc state.PolicyContext, alias tools.Ident) Decision {
	if len(pc.ToolAllowlist) > 0 && !contains(pc.ToolAllowlist, alias) {
		return Decision{Allowed: false, Reason: "tool not in allowlist", Code: state.ErrPolicyDenyAllowlist}
	}
	if contains(pc.ToolDenylist, alias) {
		return Decision{Allowed: false, Reason: "tool in denylist", Code: state.ErrPolicyDenyDenylist}
	}
	return Decision{Allowed: true}
}

func contains(list []tools.Ident, id tools.Ident) bool {
	for _, t := range list {
		if t == id {
			return true
		}
	}
	return false
}
