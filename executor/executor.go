// Package executor dispatches state.ToolCall values: policy gate, then
// idempotency-cache lookup, then dispatch to a local function or a remote
// client, then cache-and-telemetry on the way out. This is the only place
// in the module a concrete tool side effect is allowed to happen.
package executor

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/novaagent/core/policy"
	"github.com/novaagent/core/registry"
	"github.com/novaagent/core/state"
	"github.com/novaagent/core/telemetry"
	"github.com/novaagent/core/tools"
)

// RemoteClient dispatches a resolved fully-qualified remote tool call. The
// execution core never talks to a transport directly; a host supplies one
// implementation per deployment (MCP, gRPC, HTTP, whatever fits).
type RemoteClient interface {
	Call(ctx context.Context, fq tools.RemoteName, args map[string]any, timeoutMs int64) state.ToolResult
}

// defaultCacheSize bounds the idempotency cache so a long-running or
// runaway agent cannot grow it without bound; keyed by idempotency key, one
// entry per attempted concrete effect.
const defaultCacheSize = 4096

// Executor implements the registry -> policy -> idempotency -> dispatch
// pipeline used by the act node.
type Executor struct {
	registry *registry.Registry
	policy   policy.Engine
	remote   RemoteClient
	logger   telemetry.Logger
	tracer   telemetry.Tracer

	mu    sync.Mutex
	cache *lru.Cache[string, state.ToolResult]
}

// Option configures an Executor at construction time.
type Option func(*Executor)

// WithRemoteClient injects the transport used for remote-mapped aliases.
// Without one, remote-mapped aliases fail with ErrMCPNotConfigured.
func WithRemoteClient(c RemoteClient) Option {
	return func(e *Executor) { e.remote = c }
}

// WithLogger overrides the default no-op Logger.
func WithLogger(l telemetry.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithTracer overrides the default no-op Tracer.
func WithTracer(t telemetry.Tracer) Option {
	return func(e *Executor) { e.tracer = t }
}

// WithCacheSize overrides the default idempotency cache capacity.
func WithCacheSize(size int) Option {
	return func(e *Executor) {
		c, err := lru.New[string, state.ToolResult](size)
		if err == nil {
			e.cache = c
		}
	}
}

// New builds an Executor over reg, gating every call through eng.
func New(reg *registry.Registry, eng policy.Engine, opts ...Option) *Executor {
	cache, _ := lru.New[string, state.ToolResult](defaultCacheSize)
	e := &Executor{
		registry: reg,
		policy:   eng,
		logger:   telemetry.NewNoopLogger(),
		tracer:   telemetry.NewNoopTracer(),
		cache:    cache,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Has reports whether alias is backed by a local or remote tool.
func (e *Executor) Has(alias tools.Ident) bool {
	return e.registry.Has(alias)
}

// Call executes call against s's PolicyContext: policy gate, idempotency
// cache, dispatch, cache-result (including failures), telemetry. It never
// returns a Go error — refusals and failures are communicated through
// ToolResult so callers can route on them uniformly with tool successes.
func (e *Executor) Call(ctx context.Context, s *state.AgentState, call state.ToolCall) state.ToolResult {
	ctx, span := e.tracer.Start(ctx, "executor.call")
	defer span.End()

	decision := e.policy.Decide(ctx, s.Policy, call.Name)
	if !decision.Allowed {
		s.Policy.LastDecision = strPtr("DENY")
		s.Policy.DenyReason = strPtr(decision.Reason)
		s.Telemetry.Event("tool_denied", map[string]any{
			"tool":   string(call.Name),
			"reason": decision.Code.String(),
		})
		return state.ToolResult{OK: false, Error: decision.Code.String()}
	}
	s.Policy.LastDecision = strPtr("ALLOW")
	s.Policy.DenyReason = nil

	e.mu.Lock()
	defer e.mu.Unlock()
	if hit, ok := e.cacheGet(call.IdempotencyKey); ok {
		s.Telemetry.Event("tool_idempotent_hit", map[string]any{"tool": string(call.Name)})
		return hit
	}

	res := e.dispatch(ctx, call)

	e.cachePut(call.IdempotencyKey, res)
	s.Telemetry.Event("tool_called", map[string]any{"tool": string(call.Name), "ok": res.OK})
	return res
}

func (e *Executor) dispatch(ctx context.Context, call state.ToolCall) state.ToolResult {
	if fn, ok := e.registry.Local(call.Name); ok {
		return fn(call.Args)
	}
	fq, ok := e.registry.Remote(call.Name)
	if !ok {
		return state.ToolResult{OK: false, Error: fmt.Sprintf("%s: %s", state.ErrToolNotFound, call.Name)}
	}
	if e.remote == nil {
		return state.ToolResult{OK: false, Error: state.ErrMCPNotConfigured.String()}
	}
	return e.remote.Call(ctx, fq, call.Args, call.TimeoutMs)
}

// cacheGet and cachePut are called by Call with e.mu held across the whole
// lookup, dispatch and insert sequence.
func (e *Executor) cacheGet(key string) (state.ToolResult, bool) {
	return e.cache.Get(key)
}

func (e *Executor) cachePut(key string, res state.ToolResult) {
	e.cache.Add(key, res)
}

func strPtr(s string) *string { return &s }
