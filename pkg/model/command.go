package model

// OpCode identifies one adapter operation carried over a transport.
type OpCode uint

const (
	// OpGetCurrentState returns the rendered name of the current state
	OpGetCurrentState OpCode = iota
	// OpTransition fires a trigger after the permission pre-check
	OpTransition
	// OpFireTrigger fires a trigger without the permission pre-check
	OpFireTrigger
	// OpCanFireTrigger checks a trigger without firing it
	OpCanFireTrigger
	// OpGetStates lists every state of the machine
	OpGetStates
	// OpGetPermittedTriggers lists the triggers permitted right now
	OpGetPermittedTriggers
	// OpGetAllTriggers lists every known trigger
	OpGetAllTriggers
	// OpGetMermaidGraph renders the machine as a mermaid state diagram
	OpGetMermaidGraph
	// OpGetDocumentation renders the usage guide
	OpGetDocumentation
	// OpDescribe returns a structured snapshot of the machine
	OpDescribe
)

func (o OpCode) String() string {
	switch o {
	case OpGetCurrentState:
		return "get_current_state"
	case OpTransition:
		return "transition"
	case OpFireTrigger:
		return "fire_trigger"
	case OpCanFireTrigger:
		return "can_fire_trigger"
	case OpGetStates:
		return "get_states"
	case OpGetPermittedTriggers:
		return "get_permitted_triggers"
	case OpGetAllTriggers:
		return "get_all_triggers"
	case OpGetMermaidGraph:
		return "get_mermaid_graph"
	case OpGetDocumentation:
		return "get_documentation"
	case OpDescribe:
		return "describe"
	}
	return "unknown"
}

// Description is the structured machine snapshot returned by OpDescribe.
// Transports deliver it as an any-typed payload, decode it with
// Transport.Decode on the receiving side.
type Description struct {
	// State is the rendered current state name.
	State string `json:"state"`
	// Permitted holds the trigger names permitted from State.
	Permitted []string `json:"permitted"`
	// Triggers holds every known trigger name.
	Triggers []string `json:"triggers"`
	// Graph is the mermaid rendering of the machine.
	Graph string `json:"graph"`
}
