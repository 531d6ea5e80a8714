package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novaagent/core/state"
	"github.com/novaagent/core/tools"
)

func TestRegistry_LocalTakesPrecedenceOverRemote(t *testing.T) {
	rm := NewRemoteMap(map[tools.Ident]tools.RemoteName{
		tools.Click: "mouse_server.click",
	})
	reg := New(rm)
	reg.Register(tools.Click, func(map[string]any) state.ToolResult {
		return state.ToolResult{OK: true}
	})

	assert.True(t, reg.HasLocal(tools.Click))
	assert.True(t, reg.HasRemote(tools.Click))
	assert.True(t, reg.Has(tools.Click))

	fn, ok := reg.Local(tools.Click)
	assert.True(t, ok)
	res := fn(nil)
	assert.True(t, res.OK)
}

func TestRegistry_UnmappedAliasHasNeither(t *testing.T) {
	reg := New(NewRemoteMap(nil))
	assert.False(t, reg.Has("nonexistent"))
}

func TestDefaultRemoteMap_CoversInputAndPerceptionTools(t *testing.T) {
	rm := DefaultRemoteMap()
	for _, alias := range []tools.Ident{
		tools.ScreenCapture, tools.OmniparserV2Parse, tools.Click, tools.TypeText, tools.UIATree,
	} {
		fq, ok := rm.Resolve(alias)
		assert.True(t, ok, "alias %s should resolve", alias)
		assert.NotEmpty(t, fq)
	}
}

func TestDefaultRemoteMap_OmitsLocalUtilityAliases(t *testing.T) {
	rm := DefaultRemoteMap()
	for _, alias := range []tools.Ident{tools.Wait, tools.Ping, tools.TimeNowMs, tools.ClipboardGet, tools.ClipboardSet} {
		_, ok := rm.Resolve(alias)
		assert.False(t, ok, "local-utility alias %s must not be remote-mapped", alias)
	}
}
