package machine

import (
	"fmt"
	"strings"

	"github.com/danl5/gofsmagent/pkg/model"
)

// NewDescriber creates a describer over the given engine.
func NewDescriber(engine model.Engine, reporter *Reporter) *Describer {
	return &Describer{engine: engine, reporter: reporter}
}

// Describer renders the machine for callers that have no other way to
// discover its shape, typically an LLM agent receiving the output as
// context.
type Describer struct {
	engine   model.Engine
	reporter *Reporter
}

// Mermaid renders the declared graph as a mermaid state diagram. Each
// state is a node and each declared transition one labeled directed
// edge, enumerated deterministically from the structural graph.
func (d *Describer) Mermaid() string {
	g := d.engine.Graph()

	var b strings.Builder
	b.WriteString("stateDiagram-v2\n")
	fmt.Fprintf(&b, "    [*] --> %s\n", g.Initial)
	for _, node := range g.States {
		for _, edge := range node.Edges {
			fmt.Fprintf(&b, "    %s --> %s : %s\n", node.State, edge.Target, edge.Trigger.Name())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// UsageGuide composes the canonical operation instructions and the
// current state, followed by the mermaid diagram when includeGraph is
// set.
func (d *Describer) UsageGuide(includeGraph bool) string {
	var b strings.Builder
	b.WriteString("Use the Transition operation to fire a trigger with its guard checks, ")
	b.WriteString("the GetCurrentState operation to read the state of the machine, ")
	b.WriteString("and the FireTrigger operation to force a trigger without the guard pre-check.\n\n")
	fmt.Fprintf(&b, "Current state: %s\n", d.reporter.CurrentState())

	if includeGraph {
		b.WriteString("\nThe diagram below describes the machine. Nodes are states, ")
		b.WriteString("labeled arrows are the triggers that move the machine between them.\n\n")
		b.WriteString(d.Mermaid())
		b.WriteString("\n")
	}
	return b.String()
}
