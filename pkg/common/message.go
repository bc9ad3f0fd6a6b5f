package common

// AttemptMessage is the fixed phrase used when reporting the result of a
// transition attempt back to the caller
type AttemptMessage string

const (
	// MsgEmptyTrigger represents a missing trigger name
	MsgEmptyTrigger AttemptMessage = `no trigger name provided`
	// MsgUnknownTrigger represents a trigger name that resolves to nothing
	MsgUnknownTrigger AttemptMessage = `unknown trigger`
	// MsgNotPermitted represents a known trigger that cannot fire from the current state
	MsgNotPermitted AttemptMessage = `trigger not permitted`
	// MsgEngineRejected represents a rejection raised by the engine during the fire itself
	MsgEngineRejected AttemptMessage = `engine rejected the transition`
	// MsgCanceled represents a fire call cut short by the caller's context
	MsgCanceled AttemptMessage = `transition canceled`
)

func (a AttemptMessage) String() string {
	return string(a)
}
