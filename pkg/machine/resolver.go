package machine

import (
	"strings"

	"github.com/danl5/gofsmagent/pkg/model"
)

// NewResolver creates a resolver over the given engine.
func NewResolver(engine model.Engine) *Resolver {
	return &Resolver{engine: engine}
}

// Resolver maps caller-supplied trigger names to the trigger values known
// to the engine. Matching is case-insensitive, and the leading
// whitespace-delimited token of a rendered name also matches, so an
// annotated name like "Go (to B)" resolves from "go". Leading tokens
// should be unique across triggers; colliding tokens resolve to the
// first catalog entry in iteration order.
type Resolver struct {
	engine model.Engine
}

// Catalog returns every trigger known to the engine: triggers on declared
// edges, the declared closed set, and the currently permitted ones. It is
// recomputed on every call, the engine configuration may change between
// calls.
func (r *Resolver) Catalog() []model.Trigger {
	var catalog []model.Trigger
	seen := map[string]bool{}
	add := func(t model.Trigger) {
		key := strings.ToLower(t.Name())
		if seen[key] {
			return
		}
		seen[key] = true
		catalog = append(catalog, t)
	}

	for _, node := range r.engine.Graph().States {
		for _, edge := range node.Edges {
			add(edge.Trigger)
		}
	}
	for _, t := range r.engine.DeclaredTriggers() {
		add(t)
	}
	for _, t := range r.engine.PermittedTriggers() {
		add(t)
	}
	return catalog
}

// Names renders the catalog as strings.
func (r *Resolver) Names() []string {
	catalog := r.Catalog()
	names := make([]string, 0, len(catalog))
	for _, t := range catalog {
		names = append(names, t.Name())
	}
	return names
}

// Resolve finds the trigger matching name. Declared triggers match first
// on the exact rendered name, then the whole catalog is scanned by full
// name and by leading token. The second return value is false when
// nothing matches.
func (r *Resolver) Resolve(name string) (model.Trigger, bool) {
	for _, t := range r.engine.DeclaredTriggers() {
		if strings.EqualFold(t.Name(), name) {
			return t, true
		}
	}

	for _, t := range r.Catalog() {
		if strings.EqualFold(t.Name(), name) {
			return t, true
		}
		if strings.EqualFold(leadingToken(t.Name()), name) {
			return t, true
		}
	}
	return nil, false
}

func leadingToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
