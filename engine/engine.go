// Package engine abstracts graph registration and execution so the driver
// backing a run (in-memory today, something durable tomorrow) can change
// without touching the node or router packages. It deliberately does not
// offer Temporal-style durable replay: crash-consistent state is out of
// scope for this module, so the only concrete adapter is an in-memory one
// (see engine/inmem). The interface stays the seam a host can later widen.
package engine

import (
	"context"

	"github.com/novaagent/core/state"
)

// NodeFunc is a single node's transition function: it reads and mutates the
// AgentState it is given and returns the (possibly same) state to continue
// with. Nodes never return a Go error for control flow — failures are
// represented as state, per state.ErrorCode.
type NodeFunc func(ctx context.Context, s *state.AgentState) *state.AgentState

// RouterFunc inspects s and returns the name of the next node to run, or
// "" to stop the run and hand s back to the caller.
type RouterFunc func(s *state.AgentState) string

// NodeDefinition binds a node function to a name and its router.
type NodeDefinition struct {
	Name    string
	Handler NodeFunc
	Router  RouterFunc
}

// Engine registers a graph of nodes and runs it to a terminal state.
type Engine interface {
	// RegisterNode adds a node definition; registering a name that is
	// already registered returns an error. Safe to call only before Run
	// starts; concurrent registration during a run is undefined.
	RegisterNode(def NodeDefinition) error

	// Run drives s from entry through the graph until a node's router
	// returns "" (after the finalize node of a terminal run, or when a run
	// pauses), then returns the final state. entry names the first node to
	// invoke.
	Run(ctx context.Context, entry string, s *state.AgentState) (*state.AgentState, error)
}
