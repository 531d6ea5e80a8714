package localtools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaagent/core/registry"
	"github.com/novaagent/core/tools"
)

func TestWait_SleepsAndReportsMs(t *testing.T) {
	res := Wait(map[string]any{"ms": 5})
	require.True(t, res.OK)
	data := res.Data.(map[string]any)
	assert.Equal(t, 5, data["slept_ms"])
}

func TestWait_DefaultsTo250(t *testing.T) {
	res := Wait(nil)
	data := res.Data.(map[string]any)
	assert.Equal(t, 250, data["slept_ms"])
}

func TestWait_ClampsNegative(t *testing.T) {
	res := Wait(map[string]any{"ms": -10})
	data := res.Data.(map[string]any)
	assert.Equal(t, 0, data["slept_ms"])
}

func TestPing_EchoesInput(t *testing.T) {
	res := Ping(map[string]any{"echo": "hello"})
	require.True(t, res.OK)
	data := res.Data.(map[string]any)
	assert.Equal(t, "hello", data["echo"])
}

func TestTimeNowMs_ReturnsTimestamp(t *testing.T) {
	res := TimeNowMs(nil)
	require.True(t, res.OK)
	data := res.Data.(map[string]any)
	assert.Greater(t, data["ts_ms"].(int64), int64(0))
}

func TestClipboard_MissingBackendFailsClosed(t *testing.T) {
	get := ClipboardGet(nil)
	res := get(nil)
	assert.False(t, res.OK)
	assert.Contains(t, res.Error, "MISSING_DEPENDENCY")

	set := ClipboardSet(nil)
	res2 := set(map[string]any{"text": "x"})
	assert.False(t, res2.OK)
}

func TestClipboard_MemBackendRoundTrips(t *testing.T) {
	backend := NewMemClipboard()
	set := ClipboardSet(backend)
	get := ClipboardGet(backend)

	res := set(map[string]any{"text": "hello world"})
	require.True(t, res.OK)

	got := get(nil)
	require.True(t, got.OK)
	assert.Equal(t, "hello world", got.Data.(map[string]any)["text"])
}

func TestRegister_WiresAllFiveAliases(t *testing.T) {
	reg := registry.New(registry.NewRemoteMap(nil))
	Register(reg, NewMemClipboard())

	for _, alias := range []tools.Ident{tools.Wait, tools.Ping, tools.TimeNowMs, tools.ClipboardGet, tools.ClipboardSet} {
		assert.True(t, reg.HasLocal(alias), "alias %s should be locally registered", alias)
	}
}
