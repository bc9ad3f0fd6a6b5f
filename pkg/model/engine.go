package model

import "context"

// Engine is the transition engine collaborator driven by the adapter.
// The adapter only references an engine, it never creates, copies or
// destroys one; all machine state lives inside the engine.
type Engine interface {
	// Current returns the current state of the machine.
	Current() State

	// PermittedTriggers returns the triggers that can fire from the current state.
	PermittedTriggers() []Trigger

	// CanFire reports whether the trigger can fire from the current state.
	CanFire(trigger Trigger) bool

	// Fire fires the trigger, running any configured guard checks and
	// entry/exit actions. It returns the state the machine ended up in.
	// A non-nil error carries the engine's own rejection detail and means
	// the state did not change.
	Fire(ctx context.Context, trigger Trigger) (State, error)

	// Graph returns the declared structure of the machine.
	Graph() Graph

	// DeclaredTriggers returns the closed set of triggers the machine was
	// configured with, or an empty slice when the trigger universe is open.
	DeclaredTriggers() []Trigger
}
