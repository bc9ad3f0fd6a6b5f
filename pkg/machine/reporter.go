package machine

import (
	"github.com/danl5/gofsmagent/pkg/model"
)

// NewReporter creates a reporter over the given engine.
func NewReporter(engine model.Engine, resolver *Resolver) *Reporter {
	return &Reporter{engine: engine, resolver: resolver}
}

// Reporter produces read-only snapshots of the machine shape. No method
// has side effects.
type Reporter struct {
	engine   model.Engine
	resolver *Resolver
}

// States returns every state in the engine's enumeration order.
func (r *Reporter) States() []string {
	g := r.engine.Graph()
	names := make([]string, 0, len(g.States))
	for _, node := range g.States {
		names = append(names, node.State.String())
	}
	return names
}

// PermittedTriggers returns the trigger names permitted from the current
// state. This is a live query, the result changes as the machine moves.
func (r *Reporter) PermittedTriggers() []string {
	return triggerNames(r.engine.PermittedTriggers())
}

// AllTriggers returns every known trigger name, de-duplicated.
func (r *Reporter) AllTriggers() []string {
	return r.resolver.Names()
}

// CurrentState returns the rendered name of the current state.
func (r *Reporter) CurrentState() string {
	return r.engine.Current().String()
}
