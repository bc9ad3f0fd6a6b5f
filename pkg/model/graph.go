package model

// Graph is a structural snapshot of a machine: every state and its
// outgoing edges. It is rebuilt on each query, the engine configuration
// may change between calls.
type Graph struct {
	// Initial is the state the machine starts in.
	Initial State
	// States holds every state in the engine's enumeration order.
	States []StateNode
}

// StateNode is one state together with its outgoing transitions.
type StateNode struct {
	State State
	Edges []Edge
}

// Edge is one outgoing transition of a state.
type Edge struct {
	// Trigger fires the transition.
	Trigger Trigger
	// Target is the state the transition lands in.
	Target State
}
