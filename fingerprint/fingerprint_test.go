package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStable_OrderIndependent(t *testing.T) {
	a := map[string]any{"b": 2, "a": 1, "c": []any{1, 2, 3}}
	b := map[string]any{"c": []any{1, 2, 3}, "a": 1, "b": 2}
	assert.Equal(t, Stable(a), Stable(b))
}

func TestStable_DifferentValuesDiffer(t *testing.T) {
	a := map[string]any{"x": 1}
	b := map[string]any{"x": 2}
	assert.NotEqual(t, Stable(a), Stable(b))
}

func TestStable_NestedMapOrderIndependent(t *testing.T) {
	a := map[string]any{"outer": map[string]any{"a": 1, "b": 2}}
	b := map[string]any{"outer": map[string]any{"b": 2, "a": 1}}
	assert.Equal(t, Stable(a), Stable(b))
}

func TestStable_Deterministic(t *testing.T) {
	v := map[string]any{"k": "v", "n": 42}
	first := Stable(v)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Stable(v))
	}
}

func TestStable_NilVsEmpty(t *testing.T) {
	assert.Equal(t, Stable(map[string]any{}), Stable(map[string]any(nil)))
}
