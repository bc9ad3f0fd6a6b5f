package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/danl5/gofsmagent"
	"github.com/danl5/gofsmagent/pkg/registry"
)

// NewServer creates an MCP server exposing every adapter in reg.
func NewServer(reg *registry.Registry, logger *slog.Logger) (*Server, error) {
	if reg == nil {
		return nil, errors.New("new mcp server, registry is nil")
	}
	if logger == nil {
		return nil, errors.New("new mcp server, logger is nil")
	}

	s := &Server{
		reg:       reg,
		logger:    logger.With("component", "mcp server"),
		mcpServer: server.NewMCPServer("gofsmagent", gofsmagent.Version),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Server exposes the registered adapters as a set of MCP tools, so an
// LLM restricted to tool calls can drive and inspect the machines. Every
// tool takes an optional machine argument addressing one registered
// instance and defaults to registry.DefaultName.
type Server struct {
	reg       *registry.Registry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	machineArg := mcp.WithString("machine",
		mcp.Description(fmt.Sprintf("Registered machine name, defaults to %q", registry.DefaultName)))
	triggerArg := mcp.WithString("trigger",
		mcp.Required(), mcp.Description("Name of the trigger to fire or check"))

	s.mcpServer.AddTool(mcp.NewTool("get_current_state",
		mcp.WithDescription("Get the current state of the state machine."),
		machineArg,
	), s.textTool(func(_ context.Context, a *gofsmagent.Adapter, _ mcp.CallToolRequest) string {
		return a.GetCurrentState()
	}))

	s.mcpServer.AddTool(mcp.NewTool("transition",
		mcp.WithDescription("Fire a trigger after checking it is permitted from the current state. "+
			"The result names the new state, or explains why the trigger could not fire."),
		machineArg, triggerArg,
	), s.textTool(func(ctx context.Context, a *gofsmagent.Adapter, request mcp.CallToolRequest) string {
		return a.Transition(ctx, request.GetString("trigger", ""))
	}))

	s.mcpServer.AddTool(mcp.NewTool("fire_trigger",
		mcp.WithDescription("Fire a trigger without the permission pre-check. "+
			"An engine rejection is reported in the result."),
		machineArg, triggerArg,
	), s.textTool(func(ctx context.Context, a *gofsmagent.Adapter, request mcp.CallToolRequest) string {
		return a.FireTrigger(ctx, request.GetString("trigger", ""))
	}))

	s.mcpServer.AddTool(mcp.NewTool("can_fire_trigger",
		mcp.WithDescription("Check whether a trigger could fire right now, without firing it."),
		machineArg, triggerArg,
	), s.textTool(func(_ context.Context, a *gofsmagent.Adapter, request mcp.CallToolRequest) string {
		return a.CanFireTrigger(request.GetString("trigger", ""))
	}))

	s.mcpServer.AddTool(mcp.NewTool("get_states",
		mcp.WithDescription("List every state of the state machine."),
		machineArg,
	), s.listTool(func(a *gofsmagent.Adapter) []string {
		return a.GetStates()
	}))

	s.mcpServer.AddTool(mcp.NewTool("get_permitted_triggers",
		mcp.WithDescription("List the triggers permitted from the current state."),
		machineArg,
	), s.listTool(func(a *gofsmagent.Adapter) []string {
		return a.GetPermittedTriggers()
	}))

	s.mcpServer.AddTool(mcp.NewTool("get_all_triggers",
		mcp.WithDescription("List every trigger the state machine knows."),
		machineArg,
	), s.listTool(func(a *gofsmagent.Adapter) []string {
		return a.GetAllTriggers()
	}))

	s.mcpServer.AddTool(mcp.NewTool("get_mermaid_graph",
		mcp.WithDescription("Render the state machine as a mermaid state diagram. "+
			"Nodes are states, labeled arrows are triggers."),
		machineArg,
	), s.textTool(func(_ context.Context, a *gofsmagent.Adapter, _ mcp.CallToolRequest) string {
		return a.GetMermaidGraph()
	}))

	s.mcpServer.AddTool(mcp.NewTool("get_documentation",
		mcp.WithDescription("Get the usage guide of the state machine: available operations, "+
			"current state and the machine diagram."),
		machineArg,
	), s.textTool(func(_ context.Context, a *gofsmagent.Adapter, _ mcp.CallToolRequest) string {
		return a.GetStateMachineDocumentation()
	}))
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("gofsmagent://machines", "Registered Machines",
		mcp.WithMIMEType("application/json"),
	), func(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.reg.Names())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal machine names: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "gofsmagent://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) textTool(fn func(context.Context, *gofsmagent.Adapter, mcp.CallToolRequest) string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		adapter, err := s.lookup(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fn(ctx, adapter, request)), nil
	}
}

func (s *Server) listTool(fn func(*gofsmagent.Adapter) []string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		adapter, err := s.lookup(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonBytes, err := json.Marshal(fn(adapter))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	}
}

func (s *Server) lookup(request mcp.CallToolRequest) (*gofsmagent.Adapter, error) {
	name := request.GetString("machine", registry.DefaultName)
	adapter, err := s.reg.Lookup(name)
	if err != nil {
		s.logger.Error("failed to look up machine", "machine", name, "error", err.Error())
		return nil, err
	}
	return adapter, nil
}
