// Package gofsmagent exposes a finite-state machine engine through named,
// string-typed operations, so a caller that can only pass and read
// primitive values, typically an LLM agent behind a function-calling
// layer, can drive and introspect the machine.
package gofsmagent

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danl5/gofsmagent/pkg/machine"
	"github.com/danl5/gofsmagent/pkg/model"
)

// NewAdapter wires an adapter around an externally owned engine. The
// engine is referenced, never copied; all machine state stays inside it.
func NewAdapter(engine model.Engine, logger *slog.Logger) (*Adapter, error) {
	if engine == nil {
		return nil, errors.New("new adapter, engine is nil")
	}
	if logger == nil {
		return nil, errors.New("new adapter, logger is nil")
	}

	resolver := machine.NewResolver(engine)
	reporter := machine.NewReporter(engine, resolver)
	return &Adapter{
		invoker:   machine.NewInvoker(engine, resolver, logger),
		reporter:  reporter,
		describer: machine.NewDescriber(engine, reporter),
	}, nil
}

// Adapter is stateless glue over one engine. Every operation recomputes
// its view of the machine, nothing is cached between calls. The adapter
// holds no lock; sequencing firing operations one at a time is the
// caller's responsibility, introspection may run at any time and may
// observe either side of an in-flight transition.
type Adapter struct {
	// invoker fires triggers and reports outcomes
	invoker *machine.Invoker
	// reporter produces read-only machine snapshots
	reporter *machine.Reporter
	// describer renders the machine for the caller
	describer *machine.Describer
}

// GetCurrentState returns the rendered name of the current state.
func (a *Adapter) GetCurrentState() string {
	return a.reporter.CurrentState()
}

// Transition fires a trigger by name after checking that it is permitted
// from the current state. Every failure mode is reported in the returned
// string, nothing propagates as a fault.
func (a *Adapter) Transition(ctx context.Context, triggerName string) string {
	return a.invoker.Transition(ctx, triggerName).Message()
}

// FireTrigger fires a trigger by name without the permission pre-check.
// A rejection raised by the engine during the fire is rendered with the
// engine's own detail.
func (a *Adapter) FireTrigger(ctx context.Context, triggerName string) string {
	return a.invoker.FireTrigger(ctx, triggerName).Message()
}

// CanFireTrigger reports whether the named trigger could fire right now,
// without mutating the machine.
func (a *Adapter) CanFireTrigger(triggerName string) string {
	return a.invoker.CanFire(triggerName).Message()
}

// GetStates returns every state name of the machine.
func (a *Adapter) GetStates() []string {
	return a.reporter.States()
}

// GetPermittedTriggers returns the trigger names permitted from the
// current state.
func (a *Adapter) GetPermittedTriggers() []string {
	return a.reporter.PermittedTriggers()
}

// GetAllTriggers returns every known trigger name.
func (a *Adapter) GetAllTriggers() []string {
	return a.reporter.AllTriggers()
}

// GetMermaidGraph renders the machine as a mermaid state diagram.
func (a *Adapter) GetMermaidGraph() string {
	return a.describer.Mermaid()
}

// GetStateMachineDocumentation returns the usage guide: the canonical
// operations, the current state and the mermaid diagram.
func (a *Adapter) GetStateMachineDocumentation() string {
	return a.describer.UsageGuide(true)
}

// Describe returns the structured snapshot used by the transports.
func (a *Adapter) Describe() model.Description {
	return model.Description{
		State:     a.reporter.CurrentState(),
		Permitted: a.reporter.PermittedTriggers(),
		Triggers:  a.reporter.AllTriggers(),
		Graph:     a.describer.Mermaid(),
	}
}
