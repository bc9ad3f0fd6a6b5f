package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danl5/gofsmagent/pkg/registry"
)

var (
	machineName string

	graphCmd = &cobra.Command{
		Use:   "graph",
		Short: "Print the mermaid diagram of a configured machine",
		RunE:  runGraph,
	}
)

func init() {
	graphCmd.Flags().StringVar(&machineName, "machine", registry.DefaultName, "machine to render")
}

func runGraph(cmd *cobra.Command, _ []string) error {
	reg, err := buildRegistry(configPath, newLogger())
	if err != nil {
		return err
	}

	adapter, err := reg.Lookup(machineName)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), adapter.GetMermaidGraph())
	return nil
}
