package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/danl5/gofsmagent/pkg/transport/mcp"
	"github.com/danl5/gofsmagent/pkg/transport/rpc"
)

var (
	rpcAddr string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured machines over MCP stdio, and optionally over msgpack RPC",
		RunE:  runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&rpcAddr, "rpc-addr", "", "also serve the operation surface over msgpack RPC on this address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	reg, err := buildRegistry(configPath, logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	if rpcAddr != "" {
		transport, err := rpc.NewRPC(logger)
		if err != nil {
			return err
		}
		if err := transport.Start(rpcAddr, rpc.NewHandler(reg, logger), &rpc.Config{}); err != nil {
			return err
		}
		g.Go(func() error {
			<-ctx.Done()
			return ctx.Err()
		})
	}

	g.Go(func() error {
		mcpServer, err := mcp.NewServer(reg, logger)
		if err != nil {
			return err
		}
		logger.Info("mcp server listening on stdio")
		return mcpServer.ServeStdio()
	})

	return g.Wait()
}
