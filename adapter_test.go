package gofsmagent

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danl5/gofsmagent/pkg/common"
	"github.com/danl5/gofsmagent/pkg/engine"
	"github.com/danl5/gofsmagent/pkg/model"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()

	m, err := engine.NewMachine("A", []engine.Transition{
		{Trigger: "Go", From: []model.State{"A"}, To: "B"},
		{Trigger: "Back", From: []model.State{"B"}, To: "A"},
	}, nil, slog.Default())
	require.NoError(t, err)

	adapter, err := NewAdapter(m, slog.Default())
	require.NoError(t, err)
	return adapter
}

func TestNewAdapter(t *testing.T) {
	m, err := engine.NewMachine("A", []engine.Transition{
		{Trigger: "Go", From: []model.State{"A"}, To: "B"},
	}, nil, slog.Default())
	require.NoError(t, err)

	_, err = NewAdapter(nil, slog.Default())
	assert.Error(t, err)

	_, err = NewAdapter(m, nil)
	assert.Error(t, err)

	adapter, err := NewAdapter(m, slog.Default())
	require.NoError(t, err)
	assert.NotNil(t, adapter)
}

func TestAdapter_Scenario(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	assert.Equal(t, "A", adapter.GetCurrentState())

	// Back is known but not permitted from A, Go is the sole permitted trigger
	check := adapter.CanFireTrigger("Back")
	assert.Contains(t, check, common.MsgNotPermitted.String())
	assert.Contains(t, check, `"A"`)
	assert.Equal(t, []string{"Go"}, adapter.GetPermittedTriggers())

	result := adapter.Transition(ctx, "Go")
	assert.Contains(t, result, `"B"`)
	assert.Equal(t, "B", adapter.GetCurrentState())

	// no Go edge from B
	result = adapter.Transition(ctx, "Go")
	assert.Contains(t, result, common.MsgNotPermitted.String())
	assert.Contains(t, result, `"B"`)
	assert.Equal(t, "B", adapter.GetCurrentState())
}

func TestAdapter_EmptyInput(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	assert.Equal(t, common.MsgEmptyTrigger.String(), adapter.Transition(ctx, ""))
	assert.Equal(t, common.MsgEmptyTrigger.String(), adapter.FireTrigger(ctx, ""))
	assert.Equal(t, "A", adapter.GetCurrentState())
}

func TestAdapter_Introspection(t *testing.T) {
	adapter := newTestAdapter(t)

	assert.Equal(t, []string{"A", "B"}, adapter.GetStates())

	all := adapter.GetAllTriggers()
	for _, permitted := range adapter.GetPermittedTriggers() {
		assert.Contains(t, all, permitted)
	}

	graph := adapter.GetMermaidGraph()
	assert.Contains(t, graph, "A --> B : Go")
	assert.Contains(t, graph, "B --> A : Back")

	docs := adapter.GetStateMachineDocumentation()
	assert.Contains(t, docs, "Current state: A")
	assert.Contains(t, docs, "stateDiagram-v2")
}

func TestAdapter_Describe(t *testing.T) {
	adapter := newTestAdapter(t)

	description := adapter.Describe()
	assert.Equal(t, "A", description.State)
	assert.Equal(t, []string{"Go"}, description.Permitted)
	assert.ElementsMatch(t, []string{"Go", "Back"}, description.Triggers)
	assert.Contains(t, description.Graph, "stateDiagram-v2")
}
