package state

import "github.com/novaagent/core/tools"

// ToolCall is the framework-neutral invocation contract nodes build and
// hand to the executor. The registry maps Name to either a local function
// or a remote fully-qualified name; IdempotencyKey is what the executor's
// cache keys on for at-most-once concrete side effects.
type ToolCall struct {
	Name           tools.Ident    `json:"name"`
	Args           map[string]any `json:"args,omitempty"`
	IdempotencyKey string         `json:"idempotency_key"`
	TimeoutMs      int64          `json:"timeout_ms"`
}

// NewToolCall builds a ToolCall with the package default 30s timeout.
func NewToolCall(name tools.Ident, args map[string]any, idempotencyKey string) ToolCall {
	return ToolCall{Name: name, Args: args, IdempotencyKey: idempotencyKey, TimeoutMs: 30_000}
}

// ToolResult is the outcome of dispatching a ToolCall, whether served fresh
// or replayed from the idempotency cache.
type ToolResult struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
