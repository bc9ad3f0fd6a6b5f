package model

// Trigger is implemented by every trigger representation an engine knows.
// The rendered name must be stable and unique within one machine configuration.
type Trigger interface {
	Name() string
}

// EventTrigger is a plain string-backed trigger.
type EventTrigger string

func (e EventTrigger) Name() string {
	return string(e)
}
