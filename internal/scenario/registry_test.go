package scenario

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(name string) *Scenario {
	return &Scenario{
		Name:  name,
		Steps: []Step{{Name: "health", Method: "GET", Path: "/health"}},
	}
}

func TestRegister_Panics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.PanicsWithValue(t, "scenario: nil scenario", func() { Register(nil) })
	assert.PanicsWithValue(t, "scenario: empty scenario name", func() { Register(&Scenario{}) })
	assert.Panics(t, func() { Register(sample("Bad_Name")) })
	assert.Panics(t, func() { Register(sample("trailing-")) })
	assert.Panics(t, func() { Register(&Scenario{Name: "empty"}) })

	Register(sample("boxing"))
	assert.PanicsWithValue(t, "scenario: duplicate scenario registration for boxing", func() {
		Register(sample("boxing"))
	})
}

func TestRegistry_GetNamesAll(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(sample("playlist"))
	RegisterWithAlias(sample("boxing"), "smoketest")

	s, ok := Get("boxing")
	require.True(t, ok)
	assert.Equal(t, "boxing", s.Name)

	alias, ok := Get("smoketest")
	require.True(t, ok)
	assert.Same(t, s, alias)

	_, ok = Get("unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"boxing", "playlist"}, Names())
	assert.Len(t, All(), 2)
}

func TestResolve_DeprecatedWarning(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	RegisterWithAlias(sample("boxing"), "smoketest")

	var warn bytes.Buffer
	s, ok := Resolve("smoketest", &warn)
	require.True(t, ok)
	assert.Equal(t, "boxing", s.Name)
	assert.Equal(t, "WARNING: scenario 'smoketest' is deprecated, use 'boxing' instead\n", warn.String())

	warn.Reset()
	_, ok = Resolve("boxing", &warn)
	require.True(t, ok)
	assert.Empty(t, warn.String())

	_, ok = Resolve("nope", &warn)
	assert.False(t, ok)
}

func TestRegisterWithAlias_Panics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.Panics(t, func() { RegisterWithAlias(sample("boxing"), "boxing") })

	Register(sample("playlist"))
	assert.Panics(t, func() { RegisterWithAlias(sample("other"), "playlist") })
}

func TestListAllWithAliases(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	b := sample("boxing")
	b.Description = "Боксёры"
	RegisterWithAlias(b, "smoketest")
	Register(sample("playlist"))

	list := ListAllWithAliases()
	require.Len(t, list, 2)
	assert.Equal(t, Info{Name: "boxing", Description: "Боксёры", Steps: 1, DeprecatedAlias: "smoketest"}, list[0])
	assert.Equal(t, "playlist", list[1].Name)
	assert.Empty(t, list[1].DeprecatedAlias)
}
