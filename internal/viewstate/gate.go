// Package viewstate tracks which list the user is looking at and rejects
// index-based mutations aimed at the other one.
package viewstate

import (
	"errors"
	"fmt"
	"strings"
)

// State is the list currently on display.
type State int

const (
	// Member is the member list. It is the initial state.
	Member State = iota
	// Event is the event list.
	Event
	// SingleEvent is the detail view of one event and its roster.
	SingleEvent
)

var stateNames = map[State]string{
	Member:      "member",
	Event:       "event",
	SingleEvent: "single_event",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState is the inverse of String. The empty string yields Member.
func ParseState(s string) (State, error) {
	if strings.TrimSpace(s) == "" {
		return Member, nil
	}
	for st, n := range stateNames {
		if strings.EqualFold(n, s) {
			return st, nil
		}
	}
	return Member, fmt.Errorf("unknown view state %q", s)
}

// Gate rejections.
var (
	ErrInvalidState   = errors.New("command not allowed in current view")
	ErrNotEventState  = fmt.Errorf("%w: switch to the event list first (list-events)", ErrInvalidState)
	ErrNotMemberState = fmt.Errorf("%w: switch to the member list first (list-members)", ErrInvalidState)
)

// Gate is the view-state machine. The zero value starts in Member.
type Gate struct {
	state State
}

// NewGate returns a gate in state s.
func NewGate(s State) *Gate {
	return &Gate{state: s}
}

// State returns the current state.
func (g *Gate) State() State { return g.state }

// Require fails unless the gate is in want. It never changes the state.
func (g *Gate) Require(want State) error {
	if g.state == want {
		return nil
	}
	switch want {
	case Event:
		return ErrNotEventState
	case Member:
		return ErrNotMemberState
	default:
		return fmt.Errorf("%w: requires %s view, current view is %s", ErrInvalidState, want, g.state)
	}
}

// Transition moves the gate to s.
func (g *Gate) Transition(s State) { g.state = s }
