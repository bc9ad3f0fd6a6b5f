package registry

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danl5/gofsmagent"
	"github.com/danl5/gofsmagent/pkg/engine"
	"github.com/danl5/gofsmagent/pkg/model"
)

func newTestAdapter(t *testing.T) *gofsmagent.Adapter {
	t.Helper()

	m, err := engine.NewMachine("A", []engine.Transition{
		{Trigger: "Go", From: []model.State{"A"}, To: "B"},
	}, nil, slog.Default())
	require.NoError(t, err)

	adapter, err := gofsmagent.NewAdapter(m, slog.Default())
	require.NoError(t, err)
	return adapter
}

func TestRegistry_Register(t *testing.T) {
	reg := New()
	adapter := newTestAdapter(t)

	assert.Error(t, reg.Register("", adapter))
	assert.Error(t, reg.Register("   ", adapter))
	assert.Error(t, reg.Register(DefaultName, nil))

	require.NoError(t, reg.Register(DefaultName, adapter))

	// re-registering overwrites
	other := newTestAdapter(t)
	require.NoError(t, reg.Register(DefaultName, other))

	got, err := reg.Lookup(DefaultName)
	require.NoError(t, err)
	assert.Same(t, other, got)
}

func TestRegistry_Lookup(t *testing.T) {
	reg := New()

	_, err := reg.Lookup("")
	assert.Error(t, err)

	_, err = reg.Lookup("traffic")
	require.Error(t, err)
	// the error names the identifier and tells how to register one
	assert.Contains(t, err.Error(), `"traffic"`)
	assert.Contains(t, err.Error(), "Register")

	adapter := newTestAdapter(t)
	require.NoError(t, reg.Register("traffic", adapter))

	got, err := reg.Lookup("traffic")
	require.NoError(t, err)
	assert.Same(t, adapter, got)
}

func TestRegistry_Remove(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(DefaultName, newTestAdapter(t)))

	assert.True(t, reg.Remove(DefaultName))
	// removing an absent name reports not found, it does not fail
	assert.False(t, reg.Remove(DefaultName))
	assert.False(t, reg.Remove("never-registered"))
}

func TestRegistry_Names(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register("b", newTestAdapter(t)))
	require.NoError(t, reg.Register("a", newTestAdapter(t)))

	assert.Equal(t, []string{"a", "b"}, reg.Names())
}
