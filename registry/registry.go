// Package registry resolves tool aliases to either a local Go function or
// a remote fully-qualified name, the same alias -> {local | remote}
// tagged-union routing the execution core's executor dispatches through.
package registry

import (
	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

// LocalFunc is a locally-executed tool implementation.
type LocalFunc func(args map[string]any) state.ToolResult

// RemoteMap maps tool aliases to fully-qualified remote tool names (e.g.
// "click" -> "mouse_server.click"). Resolve returns ("", false) for an
// alias with no remote mapping.
type RemoteMap struct {
	aliasToFQ map[tools.Ident]tools.RemoteName
}

// NewRemoteMap builds a RemoteMap from an alias -> fully-qualified-name
// table.
func NewRemoteMap(aliasToFQ map[tools.Ident]tools.RemoteName) RemoteMap {
	m := make(map[tools.Ident]tools.RemoteName, len(aliasToFQ))
	for k, v := range aliasToFQ {
		m[k] = v
	}
	return RemoteMap{aliasToFQ: m}
}

// Resolve returns the fully-qualified remote name for alias, if mapped.
func (m RemoteMap) Resolve(alias tools.Ident) (tools.RemoteName, bool) {
	fq, ok := m.aliasToFQ[alias]
	return fq, ok
}

// Registry holds local tool implementations plus the remote alias mapping.
// Local tools take precedence: an alias registered both locally and
// remotely always dispatches locally.
type Registry struct {
	local  map[tools.Ident]LocalFunc
	remote RemoteMap
}

// New builds an empty Registry over the given remote alias mapping. Use
// Register to add local tool implementations.
func New(remote RemoteMap) *Registry {
	return &Registry{local: map[tools.Ident]LocalFunc{}, remote: remote}
}

// Register adds or replaces a local tool implementation for alias.
func (r *Registry) Register(alias tools.Ident, fn LocalFunc) {
	r.local[alias] = fn
}

// HasLocal reports whether alias has a registered local implementation.
func (r *Registry) HasLocal(alias tools.Ident) bool {
	_, ok := r.local[alias]
	return ok
}

// HasRemote reports whether alias resolves to a remote fully-qualified name.
func (r *Registry) HasRemote(alias tools.Ident) bool {
	_, ok := r.remote.Resolve(alias)
	return ok
}

// Has reports whether alias is backed by either a local or remote tool.
func (r *Registry) Has(alias tools.Ident) bool {
	return r.HasLocal(alias) || r.HasRemote(alias)
}

// Local returns the local implementation for alias, if any.
func (r *Registry) Local(alias tools.Ident) (LocalFunc, bool) {
	fn, ok := r.local[alias]
	return fn, ok
}

// Remote returns the fully-qualified remote name for alias, if any.
func (r *Registry) Remote(alias tools.Ident) (tools.RemoteName, bool) {
	return r.remote.Resolve(alias)
}

// DefaultRemoteMap returns the MCP-first alias mapping: vision_server for
// perception tools, mouse_server/keyboard_server for input tools, and
// uia_server for UI Automation tools. Local-utility aliases (wait, ping,
// time_now_ms, clipboard_*) are intentionally absent — those are served by
// localtools.Register, never remotely.
func DefaultRemoteMap() RemoteMap {
	return NewRemoteMap(map[tools.Ident]tools.RemoteName{
		tools.ScreenCapture:     "vision_server.screen_capture",
		tools.OmniparserV2Parse: "vision_server.omniparser_v2_parse",
		tools.ScreenshotDiff:    "vision_server.screenshot_diff",

		tools.Click:       "mouse_server.click",
		tools.DoubleClick: "mouse_server.double_click",
		tools.RightClick:  "mouse_server.right_click",
		tools.Move:        "mouse_server.move",
		tools.Drag:        "mouse_server.drag",
		tools.Scroll:      "mouse_server.scroll",

		tools.TypeText: "keyboard_server.type_text",
		tools.Hotkey:   "keyboard_server.hotkey",
		tools.KeyDown:  "keyboard_server.key_down",
		tools.KeyUp:    "keyboard_server.key_up",

		tools.FocusWindow: "uia_server.focus_window",
		tools.UIATree:     "uia_server.uia_tree",
		tools.UIAClick:    "uia_server.uia_click",
		tools.UIASetText:  "uia_server.uia_set_text",
	})
}
