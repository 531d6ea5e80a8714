// Package fingerprint computes stable, deterministic (non-cryptographic)
// digests of arbitrary values for dedupe and idempotency-key derivation.
package fingerprint

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
)

// Stable returns a short hex digest of v's canonical JSON form (keys sorted,
// maps normalized recursively). Equal values always fingerprint identically
// regardless of map/struct field ordering; the digest is not cryptographic
// and must not be used for anything security sensitive.
func Stable(v any) string {
	canon := canonicalize(v)
	b, err := json.Marshal(canon)
	if err != nil {
		// canonicalize only ever produces json.Marshal-safe values; a failure
		// here means a caller passed something pathological (e.g. a channel).
		b = []byte(fmt.Sprintf("%v", v))
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return fmt.Sprintf("%016x", h.Sum64())
}

// canonicalize walks v and sorts any map[string]any by key so that
// json.Marshal (which already sorts map keys) composes with nested slices
// consistently. json.Marshal sorts map[string]any keys natively, but maps
// typed as map[string]T or decoded from arbitrary sources may carry
// non-comparable ordering for slices of maps; canonicalize normalizes those
// too so the digest is stable across re-serialization.
func canonicalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = canonicalize(t[k])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = canonicalize(e)
		}
		return out
	default:
		return v
	}
}
