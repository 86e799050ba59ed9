package tap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePragmaItems(t *testing.T) {
	items := ParsePragmaItems(" +strict, -readblock ,  +foo")
	assert.Equal(t, []string{"+strict", "-readblock", "+foo"}, items)
}

func TestParsePragmaItemsEmpty(t *testing.T) {
	assert.Empty(t, ParsePragmaItems("   "))
}

func TestBoolToggleOnOffReset(t *testing.T) {
	var flag bool
	toggle := NewBoolToggle(&flag)

	toggle(On)
	assert.True(t, flag)

	toggle(Off)
	assert.False(t, flag)

	toggle(On)
	toggle(Reset)
	assert.False(t, flag, "reset restores the value captured at first invocation")
}

func TestBoolToggleRemembersDefaultTrue(t *testing.T) {
	flag := true
	toggle := NewBoolToggle(&flag)

	toggle(Off)
	require.False(t, flag)
	toggle(Reset)
	assert.True(t, flag)
}

func TestRegistryDispatchUnknownNameIgnored(t *testing.T) {
	r := NewRegistry()
	ok := r.Dispatch("+mystery")
	assert.True(t, ok, "unknown pragma names are ignored, not rejected")
}

func TestRegistryDispatchMalformed(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Dispatch(""))
	assert.False(t, r.Dispatch("+"))
	assert.False(t, r.Dispatch("strict"))
}

func TestRegistryResetAll(t *testing.T) {
	var strict bool
	r := NewRegistry()
	r.Register("strict", NewBoolToggle(&strict), nil)

	r.Dispatch("+strict")
	require.True(t, strict)

	r.ResetAll()
	assert.False(t, strict)
}

func TestRegistryCheckStopsAtFirstClaim(t *testing.T) {
	var calls []string
	r := NewRegistry()
	r.Register("a", NewBoolToggle(new(bool)), func(line string) bool {
		calls = append(calls, "a")
		return false
	})
	r.Register("b", NewBoolToggle(new(bool)), func(line string) bool {
		calls = append(calls, "b")
		return true
	})
	r.Register("c", NewBoolToggle(new(bool)), func(line string) bool {
		calls = append(calls, "c")
		return true
	})

	handled := r.Check("pragma +a")
	assert.True(t, handled)
	assert.Equal(t, []string{"a", "b"}, calls)
}
