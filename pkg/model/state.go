package model

// State represents a single state of a machine.
type State string

func (s State) String() string {
	return string(s)
}
