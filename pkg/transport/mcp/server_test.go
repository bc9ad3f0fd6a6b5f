package mcp

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danl5/gofsmagent"
	"github.com/danl5/gofsmagent/pkg/engine"
	"github.com/danl5/gofsmagent/pkg/model"
	"github.com/danl5/gofsmagent/pkg/registry"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	m, err := engine.NewMachine("A", []engine.Transition{
		{Trigger: "Go", From: []model.State{"A"}, To: "B"},
	}, nil, slog.Default())
	require.NoError(t, err)

	adapter, err := gofsmagent.NewAdapter(m, slog.Default())
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, reg.Register(registry.DefaultName, adapter))
	return reg
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewServer(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := NewServer(nil, slog.Default())
	assert.Error(t, err)

	_, err = NewServer(reg, nil)
	assert.Error(t, err)

	s, err := NewServer(reg, slog.Default())
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestServer_TextTool(t *testing.T) {
	s, err := NewServer(newTestRegistry(t), slog.Default())
	require.NoError(t, err)

	handler := s.textTool(func(_ context.Context, a *gofsmagent.Adapter, _ mcp.CallToolRequest) string {
		return a.GetCurrentState()
	})

	// the machine argument defaults to the default instance
	result, err := handler(context.Background(), toolRequest(map[string]any{}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "A", resultText(t, result))

	// an unregistered machine is a tool error, not a fault
	result, err = handler(context.Background(), toolRequest(map[string]any{"machine": "missing"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"missing"`)
}

func TestServer_ListTool(t *testing.T) {
	s, err := NewServer(newTestRegistry(t), slog.Default())
	require.NoError(t, err)

	handler := s.listTool(func(a *gofsmagent.Adapter) []string {
		return a.GetStates()
	})

	result, err := handler(context.Background(), toolRequest(map[string]any{}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.JSONEq(t, `["A","B"]`, resultText(t, result))
}
