package state

// PerceptionSnapshot normalizes every perception output into one place so
// that nodes and the injected planner/verifier stay model- and
// sensor-agnostic. ScreenshotHash is the identity used for dedupe/replay;
// ScreenshotB64 is optional and should only be populated when a caller
// genuinely needs the raw image (debug/replay), since it is comparatively
// heavy to carry and serialize.
type PerceptionSnapshot struct {
	ScreenshotHash string           `json:"screenshot_hash,omitempty"`
	ScreenshotB64  *string          `json:"screenshot_b64,omitempty"`
	FocusedWindow  *string          `json:"focused_window,omitempty"`
	UIATree        map[string]any   `json:"uia_tree,omitempty"`
	Elements       []map[string]any `json:"elements,omitempty"`
	TsMs           int64            `json:"ts_ms"`
}

// NewPerceptionSnapshot stamps TsMs at construction time.
func NewPerceptionSnapshot() *PerceptionSnapshot {
	return &PerceptionSnapshot{TsMs: NowMs()}
}
