package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danl5/gofsmagent"
	"github.com/danl5/gofsmagent/pkg/config"
	"github.com/danl5/gofsmagent/pkg/engine"
	"github.com/danl5/gofsmagent/pkg/model"
	"github.com/danl5/gofsmagent/pkg/registry"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:     "gofsmagent",
		Short:   "Expose configured state machines to LLM agents as named operations",
		Version: gofsmagent.Version,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "machines.yaml", "machine definition file")
	rootCmd.AddCommand(serveCmd, graphCmd)
}

func newLogger() *slog.Logger {
	// stdout belongs to the MCP stdio transport
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// buildRegistry loads the machine definitions and registers one adapter
// per declared machine. A machine without a name becomes the default
// instance.
func buildRegistry(path string, logger *slog.Logger) (*registry.Registry, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	for _, mc := range cfg.Machines {
		table := make([]engine.Transition, 0, len(mc.Transitions))
		for _, tr := range mc.Transitions {
			from := make([]model.State, 0, len(tr.From))
			for _, s := range tr.From {
				from = append(from, model.State(s))
			}
			table = append(table, engine.Transition{
				Trigger: model.EventTrigger(tr.Trigger),
				From:    from,
				To:      model.State(tr.To),
			})
		}

		m, err := engine.NewMachine(model.State(mc.Initial), table, nil, logger)
		if err != nil {
			return nil, err
		}
		adapter, err := gofsmagent.NewAdapter(m, logger)
		if err != nil {
			return nil, err
		}

		name := mc.Name
		if name == "" {
			name = registry.DefaultName
		}
		if err := reg.Register(name, adapter); err != nil {
			return nil, err
		}
		logger.Info("registered machine", "machine", name, "initial", mc.Initial)
	}
	return reg, nil
}
