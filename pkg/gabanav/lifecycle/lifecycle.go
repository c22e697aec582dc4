// Package lifecycle models the lifecycle states a navigation entry moves
// through and the registry that walks observers through each step.
//
// States are ordered: a state compares greater than another when it is
// further along the way to being visible and interactive.
//
//	Destroyed < Initialized < Created < Started < Resumed
//
// Moving between two states always passes through every state in between,
// emitting one Event per step.
package lifecycle

import "fmt"

// State is a lifecycle state.
type State int

const (
	Destroyed State = iota
	Initialized
	Created
	Started
	Resumed
)

func (s State) String() string {
	switch s {
	case Destroyed:
		return "DESTROYED"
	case Initialized:
		return "INITIALIZED"
	case Created:
		return "CREATED"
	case Started:
		return "STARTED"
	case Resumed:
		return "RESUMED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AtLeast reports whether s is the same as or further along than other.
func (s State) AtLeast(other State) bool {
	return s >= other
}

// Min returns the lesser of two states.
func Min(a, b State) State {
	if a < b {
		return a
	}
	return b
}

// Event is a single step between two adjacent states.
type Event int

const (
	EventCreate Event = iota
	EventStart
	EventResume
	EventPause
	EventStop
	EventDestroy
)

func (e Event) String() string {
	switch e {
	case EventCreate:
		return "ON_CREATE"
	case EventStart:
		return "ON_START"
	case EventResume:
		return "ON_RESUME"
	case EventPause:
		return "ON_PAUSE"
	case EventStop:
		return "ON_STOP"
	case EventDestroy:
		return "ON_DESTROY"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// TargetState is the state a registry is in after dispatching e.
func (e Event) TargetState() State {
	switch e {
	case EventCreate, EventStop:
		return Created
	case EventStart, EventPause:
		return Started
	case EventResume:
		return Resumed
	default:
		return Destroyed
	}
}

func upFrom(s State) (Event, bool) {
	switch s {
	case Initialized:
		return EventCreate, true
	case Created:
		return EventStart, true
	case Started:
		return EventResume, true
	}
	return 0, false
}

func downFrom(s State) (Event, bool) {
	switch s {
	case Created:
		return EventDestroy, true
	case Started:
		return EventStop, true
	case Resumed:
		return EventPause, true
	}
	return 0, false
}
