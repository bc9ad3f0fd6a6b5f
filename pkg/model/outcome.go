package model

import (
	"fmt"
	"strings"

	"github.com/danl5/gofsmagent/pkg/common"
)

// OutcomeKind enumerates the possible results of one transition attempt.
type OutcomeKind uint

const (
	// OutcomeSuccess represents a completed transition
	OutcomeSuccess OutcomeKind = iota
	// OutcomeCanFire represents a positive dry-run check
	OutcomeCanFire
	// OutcomeEmptyInput represents an empty or whitespace trigger name
	OutcomeEmptyInput
	// OutcomeUnknownTrigger represents a name that resolves to no known trigger
	OutcomeUnknownTrigger
	// OutcomeGuardRejected represents a known trigger not permitted from the current state
	OutcomeGuardRejected
	// OutcomeEngineRejected represents a rejection raised by the engine during the fire
	OutcomeEngineRejected
	// OutcomeCanceled represents a fire call cut short by the caller's context
	OutcomeCanceled
)

// Outcome is the tagged result of a single transition attempt. It is
// built per call and rendered at the adapter boundary, never retained.
type Outcome struct {
	Kind OutcomeKind
	// Trigger is the trigger name, as resolved when resolution succeeded
	// and as supplied by the caller otherwise.
	Trigger string
	// State is the resulting state on success and the unchanged current
	// state on every rejection.
	State State
	// Permitted holds the trigger names permitted from State.
	Permitted []string
	// Known holds every trigger name known to the machine.
	Known []string
	// Detail carries the engine's own rejection or cancellation detail.
	Detail error
}

// Message renders the outcome as a caller-facing string. Every rejection
// names the current state and the triggers that would have worked, so a
// caller restricted to reading plain text can react to each failure mode.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("fired trigger %q, current state is %q", o.Trigger, o.State)
	case OutcomeCanFire:
		return fmt.Sprintf("trigger %q can fire from state %q", o.Trigger, o.State)
	case OutcomeEmptyInput:
		return common.MsgEmptyTrigger.String()
	case OutcomeUnknownTrigger:
		return fmt.Sprintf("%s %q, known triggers: %s",
			common.MsgUnknownTrigger, o.Trigger, strings.Join(o.Known, ", "))
	case OutcomeGuardRejected:
		return fmt.Sprintf("%s: %q cannot fire from state %q, permitted triggers: %s",
			common.MsgNotPermitted, o.Trigger, o.State, strings.Join(o.Permitted, ", "))
	case OutcomeEngineRejected:
		return fmt.Sprintf("%s: trigger %q from state %q: %s",
			common.MsgEngineRejected, o.Trigger, o.State, o.Detail)
	case OutcomeCanceled:
		return fmt.Sprintf("%s: trigger %q: %s", common.MsgCanceled, o.Trigger, o.Detail)
	}
	return fmt.Sprintf("unhandled outcome kind %d", o.Kind)
}
