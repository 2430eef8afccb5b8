// Package selection implements the route selection state machine: the
// start/end building pickers, route lookup, reversal and the alert shown
// to the user when a selection is not usable.
package selection

import (
	"errors"

	"campus_paths/pkg/campus"
)

// Validation errors. They are detected before any network call and are
// fully recoverable.
var (
	ErrMissingBoth  = errors.New("no start or end building selected")
	ErrMissingStart = errors.New("no start building selected")
	ErrMissingEnd   = errors.New("no end building selected")
	ErrSameBuilding = errors.New("start and end building are the same")
	ErrNoRouteYet   = errors.New("no route to reverse")
)

var alerts = map[error]string{
	ErrMissingBoth:  "Please select starting and end buildings!",
	ErrMissingStart: "Please select a starting building!",
	ErrMissingEnd:   "Please select an end building!",
	ErrSameBuilding: "Please select different starting and end buildings!",
	ErrNoRouteYet:   "Please run a route lookup first!",
}

// AlertFor returns the user-facing message for a validation error, or ""
// when err is not one.
func AlertFor(err error) string {
	for sentinel, msg := range alerts {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return ""
}

// IsValidation reports whether err is one of the validation errors.
func IsValidation(err error) bool {
	return AlertFor(err) != ""
}

// State is the selection state. The zero value is the initial state: no
// buildings selected, no route, no alert.
//
// Transitions return a new State; only Reversed mutates, and only the
// stored route.
type State struct {
	StartValue   string
	EndValue     string
	Route        *campus.Route
	AlertMessage string
}

// Validate checks that the selection can be looked up.
func (s State) Validate() error {
	switch {
	case s.StartValue == "" && s.EndValue == "":
		return ErrMissingBoth
	case s.StartValue == "":
		return ErrMissingStart
	case s.EndValue == "":
		return ErrMissingEnd
	case s.StartValue == s.EndValue:
		return ErrSameBuilding
	}
	return nil
}

// WithStart sets the start building.
func (s State) WithStart(shortName string) State {
	s.StartValue = shortName
	return s
}

// WithEnd sets the end building.
func (s State) WithEnd(shortName string) State {
	s.EndValue = shortName
	return s
}

// Alerted records the alert for a validation error.
func (s State) Alerted(err error) State {
	s.AlertMessage = AlertFor(err)
	return s
}

// Routed stores a freshly looked up route and clears the alert.
func (s State) Routed(r *campus.Route) State {
	s.Route = r
	s.AlertMessage = ""
	return s
}

// Reversed swaps the start and end buildings and reverses the stored route
// in place. On a validation failure or without a route it returns the
// alerted state and the error; the selection is left as it was.
func (s State) Reversed() (State, error) {
	if err := s.Validate(); err != nil {
		return s.Alerted(err), err
	}
	if s.Route == nil {
		return s.Alerted(ErrNoRouteYet), ErrNoRouteYet
	}
	s.StartValue, s.EndValue = s.EndValue, s.StartValue
	s.Route.Reverse()
	return s, nil
}

// Path returns a copy of the stored route's segments; empty without a route.
func (s State) Path() []campus.Segment {
	if s.Route == nil {
		return []campus.Segment{}
	}
	return campus.ClonePath(s.Route.Path)
}

// Snapshot returns a copy that shares nothing with s.
func (s State) Snapshot() State {
	s.Route = s.Route.Clone()
	return s
}
