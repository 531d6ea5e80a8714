// Package localtools implements the small set of tool aliases that are
// safer and cheaper to run in-process than to round-trip to a remote tool
// server: wait, ping, time_now_ms, and clipboard access. Everything else in
// the fixed alias vocabulary (screen capture, vision parsing, mouse,
// keyboard, UIA) is deliberately left remote-only — those benefit from the
// isolation and centralized auditing a dedicated tool server gives them.
package localtools

import (
	"time"

	"github.com/novaagent/core/registry"
	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

func ok(data any) state.ToolResult       { return state.ToolResult{OK: true, Data: data} }
func errRes(msg string) state.ToolResult { return state.ToolResult{OK: false, Error: msg} }

// Wait sleeps for args["ms"] milliseconds (default 250, clamped to >= 0).
// Deterministic and side-effect free beyond elapsed time.
func Wait(args map[string]any) state.ToolResult {
	ms := 250
	if v, ok := args["ms"]; ok {
		switch n := v.(type) {
		case int:
			ms = n
		case int64:
			ms = int(n)
		case float64:
			ms = int(n)
		}
	}
	if ms < 0 {
		ms = 0
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return ok(map[string]any{"slept_ms": ms})
}

// TimeNowMs returns the current wall-clock time for latency/ordering
// diagnostics.
func TimeNowMs(_ map[string]any) state.ToolResult {
	return ok(map[string]any{"ts_ms": state.NowMs()})
}

// Ping echoes args["echo"] back alongside a timestamp; used for liveness
// checks against the execution core without touching any other tool.
func Ping(args map[string]any) state.ToolResult {
	return ok(map[string]any{"echo": args["echo"], "ts_ms": state.NowMs()})
}

// ClipboardBackend abstracts the actual OS clipboard so the core never
// links against a platform-specific clipboard library directly — a host
// supplies the concrete implementation (or none at all).
type ClipboardBackend interface {
	Paste() (string, error)
	Copy(text string) error
}

// errMissingClipboard mirrors the Python original's MISSING_DEPENDENCY
// sentinel: no backend wired means clipboard tools fail closed rather than
// panicking.
const errMissingClipboard = "MISSING_DEPENDENCY: clipboard backend"

// ClipboardGet reads the current clipboard contents via backend, if any.
func ClipboardGet(backend ClipboardBackend) registry.LocalFunc {
	return func(_ map[string]any) state.ToolResult {
		if backend == nil {
			return errRes(errMissingClipboard)
		}
		text, err := backend.Paste()
		if err != nil {
			return errRes("CLIPBOARD_GET_ERROR: " + err.Error())
		}
		return ok(map[string]any{"text": text})
	}
}

// ClipboardSet writes args["text"] to the clipboard via backend, if any.
func ClipboardSet(backend ClipboardBackend) registry.LocalFunc {
	return func(args map[string]any) state.ToolResult {
		if backend == nil {
			return errRes(errMissingClipboard)
		}
		text, _ := args["text"].(string)
		if err := backend.Copy(text); err != nil {
			return errRes("CLIPBOARD_SET_ERROR: " + err.Error())
		}
		return ok(map[string]any{"len": len(text)})
	}
}

// Register wires every local tool (wait, ping, time_now_ms, clipboard_get
// and clipboard_set) into reg under the fixed alias vocabulary's names. Safe to call with a nil backend: clipboard aliases are still
// registered, and fail with errMissingClipboard at call time rather than
// being silently absent from Registry.Has.
func Register(reg *registry.Registry, backend ClipboardBackend) {
	reg.Register(tools.Wait, Wait)
	reg.Register(tools.TimeNowMs, TimeNowMs)
	reg.Register(tools.Ping, Ping)
	reg.Register(tools.ClipboardGet, ClipboardGet(backend))
	reg.Register(tools.ClipboardSet, ClipboardSet(backend))
}
