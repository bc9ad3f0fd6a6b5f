package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/looplab/fsm"

	"github.com/danl5/gofsmagent/pkg/model"
)

// Transition declares one edge group of a machine: Trigger fires from
// every state in From and lands in To.
type Transition struct {
	Trigger model.EventTrigger
	From    []model.State
	To      model.State
}

// NewMachine builds a machine with the given initial state and transition
// table. Callbacks are passed through to the underlying FSM and run while
// a trigger fires.
func NewMachine(initial model.State, table []Transition, callbacks fsm.Callbacks, logger *slog.Logger) (*Machine, error) {
	if logger == nil {
		return nil, fmt.Errorf("new machine, logger is nil")
	}
	if initial == "" {
		return nil, errors.New("new machine, initial state is empty")
	}
	if len(table) == 0 {
		return nil, errors.New("new machine, transition table is empty")
	}

	events := make(fsm.Events, 0, len(table))
	for _, tr := range table {
		if tr.Trigger == "" || tr.To == "" || len(tr.From) == 0 {
			return nil, fmt.Errorf("new machine, incomplete transition %q -> %q", tr.Trigger, tr.To)
		}
		src := make([]string, 0, len(tr.From))
		for _, s := range tr.From {
			src = append(src, s.String())
		}
		events = append(events, fsm.EventDesc{
			Name: tr.Trigger.Name(),
			Src:  src,
			Dst:  tr.To.String(),
		})
	}

	return &Machine{
		fsm:     fsm.NewFSM(initial.String(), events, callbacks),
		logger:  logger.With("component", "machine"),
		initial: initial,
		table:   table,
	}, nil
}

// Machine implements model.Engine on top of a looplab FSM built from a
// declared transition table. The table is retained so the structural
// graph and the closed trigger set can be served without reflection.
type Machine struct {
	// fsm is the finite state machine holding the current state
	fsm *fsm.FSM
	// logger
	logger *slog.Logger

	// initial is the state the machine starts in
	initial model.State
	// table is the declared transition table
	table []Transition
}

// Current returns the current state of the machine.
func (m *Machine) Current() model.State {
	return model.State(m.fsm.Current())
}

// PermittedTriggers returns the triggers that can fire from the current
// state, sorted by name for a stable enumeration order.
func (m *Machine) PermittedTriggers() []model.Trigger {
	names := m.fsm.AvailableTransitions()
	sort.Strings(names)

	triggers := make([]model.Trigger, 0, len(names))
	for _, n := range names {
		triggers = append(triggers, model.EventTrigger(n))
	}
	return triggers
}

// CanFire reports whether the trigger can fire from the current state.
func (m *Machine) CanFire(trigger model.Trigger) bool {
	return m.fsm.Can(trigger.Name())
}

// Fire fires the trigger and runs the configured callbacks. The machine
// state is unchanged when the returned error is non-nil. A transition
// that lands in its own source state is a completed self transition, not
// a rejection.
func (m *Machine) Fire(ctx context.Context, trigger model.Trigger) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return m.Current(), err
	}

	err := m.fsm.Event(ctx, trigger.Name())
	if err != nil {
		var selfTransition fsm.NoTransitionError
		if errors.As(err, &selfTransition) {
			return m.Current(), nil
		}
		m.logger.Debug("fire rejected", "trigger", trigger.Name(), "state", m.fsm.Current(), "error", err.Error())
		return m.Current(), err
	}

	m.logger.Debug("fired trigger", "trigger", trigger.Name(), "state", m.fsm.Current())
	return m.Current(), nil
}

// Graph returns the declared structure of the machine. States appear in
// declaration order with the initial state first, edges in table order.
func (m *Machine) Graph() model.Graph {
	order := []model.State{m.initial}
	seen := map[model.State]bool{m.initial: true}
	edges := map[model.State][]model.Edge{}

	add := func(s model.State) {
		if !seen[s] {
			seen[s] = true
			order = append(order, s)
		}
	}
	for _, tr := range m.table {
		for _, from := range tr.From {
			add(from)
			edges[from] = append(edges[from], model.Edge{Trigger: tr.Trigger, Target: tr.To})
		}
		add(tr.To)
	}

	g := model.Graph{Initial: m.initial}
	for _, s := range order {
		g.States = append(g.States, model.StateNode{State: s, Edges: edges[s]})
	}
	return g
}

// DeclaredTriggers returns the closed trigger set in declaration order.
func (m *Machine) DeclaredTriggers() []model.Trigger {
	var triggers []model.Trigger
	seen := map[string]bool{}
	for _, tr := range m.table {
		if seen[tr.Trigger.Name()] {
			continue
		}
		seen[tr.Trigger.Name()] = true
		triggers = append(triggers, tr.Trigger)
	}
	return triggers
}
