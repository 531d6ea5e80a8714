package workflow

import (
	"github.com/novaagent/core/policy"
	"github.com/novaagent/core/registry"
	"github.com/novaagent/core/telemetry"
)

// RuntimeDeps bundles everything a Graph needs to run: the injected
// collaborators a host supplies plus the perception/observability knobs
// that used to live scattered across node call sites.
type RuntimeDeps struct {
	Planner        Planner
	ActionSelector ActionSelector
	Verifier       Verifier
	Recovery       Recovery

	Registry     *registry.Registry
	RemoteClient RemoteClient
	Tooling      ToolingConfig

	// Policy defaults to policy.New() (allow/deny list engine) when nil.
	Policy policy.Engine

	StoreScreenshotB64 bool
	PreferUIATree      bool
	OmniparserEnabled  bool
	PostActionCapture  bool

	CacheSize int

	Logger telemetry.Logger
	Tracer telemetry.Tracer
}
