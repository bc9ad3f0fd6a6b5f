package rpc

import (
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danl5/gofsmagent/pkg/model"
	"github.com/danl5/gofsmagent/pkg/registry"
)

func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestTransport(t *testing.T) *RPC {
	t.Helper()

	logger := slog.Default()
	transport, err := NewRPC(logger)
	require.NoError(t, err)

	addr := freeAddress(t)
	require.NoError(t, transport.Start(addr, NewHandler(newTestRegistry(t), logger), &Config{}))

	endpoint := &model.Endpoint{ID: "local", Address: addr}
	require.NoError(t, transport.InitConnections([]*model.Endpoint{endpoint}, &Config{ConnectTimeout: 5}))
	return transport
}

func TestRPC_RoundTrip(t *testing.T) {
	transport := newTestTransport(t)

	response := &model.Response{}
	require.NoError(t, transport.SendRequest("local", &model.Request{Op: model.OpGetCurrentState}, response))
	assert.Equal(t, "A", response.Result)

	response = &model.Response{}
	require.NoError(t, transport.SendRequest("local", &model.Request{Op: model.OpTransition, Trigger: "go"}, response))
	assert.Contains(t, response.Result, `"B"`)

	response = &model.Response{}
	require.NoError(t, transport.SendRequest("local", &model.Request{Op: model.OpGetStates}, response))
	assert.Equal(t, []string{"A", "B"}, response.Results)

	description, err := transport.Describe("local", registry.DefaultName)
	require.NoError(t, err)
	assert.Equal(t, "B", description.State)
	assert.Equal(t, []string{"Back"}, description.Permitted)
	assert.Contains(t, description.Graph, "stateDiagram-v2")
}

func TestRPC_FailedCallRecovery(t *testing.T) {
	transport := newTestTransport(t)

	// a handler error travels back as a call error
	response := &model.Response{}
	err := transport.SendRequest("local", &model.Request{Machine: "missing", Op: model.OpGetCurrentState}, response)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to call rpc handler")

	// the failed call's connection is discarded, the next request gets a fresh one
	response = &model.Response{}
	require.NoError(t, transport.SendRequest("local", &model.Request{Op: model.OpGetCurrentState}, response))
	assert.Equal(t, "A", response.Result)
}

func TestRPC_UnknownEndpoint(t *testing.T) {
	transport := newTestTransport(t)

	err := transport.SendRequest("elsewhere", &model.Request{Op: model.OpGetCurrentState}, &model.Response{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no client pool found")
}
