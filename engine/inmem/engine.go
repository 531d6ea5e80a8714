// Package inmem provides an in-memory engine.Engine implementation: a plain
// loop over registered nodes with no durable replay. Suitable for the
// execution core's actual scope (a single-process run); a host wanting
// crash-consistent execution plugs in a different engine.Engine behind the
// same interface.
package inmem

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/novaagent/core/engine"
	"github.com/novaagent/core/state"
	"github.com/novaagent/core/telemetry"
)

// maxSteps bounds the per-run node-transition count. It exists only to
// catch a misconfigured graph (a router cycling forever); a well-formed
// graph terminates in well under this many steps.
const maxSteps = 10_000

type eng struct {
	mu     sync.RWMutex
	nodes  map[string]engine.NodeDefinition
	logger telemetry.Logger
	tracer telemetry.Tracer
}

// Option configures the in-memory Engine.
type Option func(*eng)

// WithLogger overrides the default no-op Logger.
func WithLogger(l telemetry.Logger) Option { return func(e *eng) { e.logger = l } }

// WithTracer overrides the default no-op Tracer.
func WithTracer(t telemetry.Tracer) Option { return func(e *eng) { e.tracer = t } }

// New returns a new in-memory engine.Engine. It is not durable or
// replay-safe: a process crash mid-run loses the in-flight state.
func New(opts ...Option) engine.Engine {
	e := &eng{
		nodes:  map[string]engine.NodeDefinition{},
		logger: telemetry.NewNoopLogger(),
		tracer: telemetry.NewNoopTracer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *eng) RegisterNode(def engine.NodeDefinition) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if def.Name == "" || def.Handler == nil || def.Router == nil {
		return errors.New("inmem: invalid node definition")
	}
	if _, dup := e.nodes[def.Name]; dup {
		return fmt.Errorf("inmem: node %q already registered", def.Name)
	}
	e.nodes[def.Name] = def
	return nil
}

func (e *eng) Run(ctx context.Context, entry string, s *state.AgentState) (*state.AgentState, error) {
	current := entry
	for i := 0; i < maxSteps; i++ {
		e.mu.RLock()
		def, ok := e.nodes[current]
		e.mu.RUnlock()
		if !ok {
			return s, fmt.Errorf("inmem: node %q not registered", current)
		}

		ctx, span := e.tracer.Start(ctx, "engine.node."+current)
		s = def.Handler(ctx, s)
		span.End()

		next := def.Router(s)
		if next == "" {
			return s, nil
		}
		current = next
	}
	return s, fmt.Errorf("inmem: exceeded %d node transitions without reaching a terminal state", maxSteps)
}
