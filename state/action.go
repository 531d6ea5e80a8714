package state

import "github.com/novaagent/core/tools"

// ActionRecord is one entry in the append-only action audit log. IdempotencyKey
// is the key under which the executor's cache deduplicates concrete side
// effects; EffectFingerprint is a post-action observable digest (typically
// a screenshot hash) a verifier can compare against expectations.
type ActionRecord struct {
	ActionID          string         `json:"action_id"`
	Tool              tools.Ident    `json:"tool"`
	Args              map[string]any `json:"args,omitempty"`
	IdempotencyKey    string         `json:"idempotency_key"`
	StartedMs         int64          `json:"started_ms"`
	EndedMs           *int64         `json:"ended_ms,omitempty"`
	OK                *bool          `json:"ok,omitempty"`
	Error             *string        `json:"error,omitempty"`
	EffectFingerprint *string        `json:"effect_fingerprint,omitempty"`
}

// Close stamps EndedMs and the outcome. It is safe to call at most once per
// record; a second call is a no-op since EndedMs is already set.
func (a *ActionRecord) Close(ok bool, errMsg *string, effectFingerprint *string) {
	if a.EndedMs != nil {
		return
	}
	ms := NowMs()
	a.EndedMs = &ms
	a.OK = &ok
	a.Error = errMsg
	a.EffectFingerprint = effectFingerprint
}
