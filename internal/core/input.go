package core

import "strings"

// Control identifies one of the player-facing control keys.
// Frontends translate physical keys into controls; the simulation only ever
// sees the set of controls that are currently held.
type Control uint8

const (
	ControlUp     Control = iota // Up arrow, W
	ControlDown                  // Down arrow, S
	ControlLeft                  // Left arrow, A
	ControlRight                 // Right arrow, D
	ControlAction                // Space
)

// String returns a human-readable name for the control.
func (c Control) String() string {
	switch c {
	case ControlUp:
		return "Up"
	case ControlDown:
		return "Down"
	case ControlLeft:
		return "Left"
	case ControlRight:
		return "Right"
	case ControlAction:
		return "Action"
	default:
		return "Unknown"
	}
}

// ControlSet is a snapshot of active controls, stored as a bitmask.
// The zero value is an empty set.
type ControlSet uint8

// NewControlSet builds a set from the given controls.
func NewControlSet(controls ...Control) ControlSet {
	var s ControlSet
	for _, c := range controls {
		s = s.With(c)
	}
	return s
}

// With returns a copy of the set with c added.
func (s ControlSet) With(c Control) ControlSet {
	return s | 1<<c
}

// Without returns a copy of the set with c removed.
func (s ControlSet) Without(c Control) ControlSet {
	return s &^ (1 << c)
}

// Has reports whether c is active.
func (s ControlSet) Has(c Control) bool {
	return s&(1<<c) != 0
}

// Jump reports whether any jump control (Up or Action) is active.
func (s ControlSet) Jump() bool {
	return s.Has(ControlUp) || s.Has(ControlAction)
}

// Empty reports whether no control is active.
func (s ControlSet) Empty() bool {
	return s == 0
}

// String lists the active controls, e.g. "Up+Action".
func (s ControlSet) String() string {
	if s.Empty() {
		return "none"
	}
	var names []string
	for c := ControlUp; c <= ControlAction; c++ {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, "+")
}
