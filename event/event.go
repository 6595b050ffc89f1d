// Package event delivers device notifications to widgets that subscribe to them.
package event

import (
	"fmt"
	"strings"
)

// Event is a notification published on a Bus.
type Event interface {
	Name() string
}

// ActivityState is the host-reported activity level of the device.
type ActivityState int

const (
	Active ActivityState = iota
	Idle
	Sleep
)

func (s ActivityState) String() string {
	switch s {
	case Active:
		return "active"
	case Idle:
		return "idle"
	case Sleep:
		return "sleep"
	default:
		return fmt.Sprintf("ActivityState(%d)", int(s))
	}
}

// ParseActivityState converts "active", "idle" or "sleep" into an ActivityState.
func ParseActivityState(s string) (ActivityState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return Active, nil
	case "idle":
		return Idle, nil
	case "sleep":
		return Sleep, nil
	}
	return Active, fmt.Errorf("%w: %q", ErrInvalidState, s)
}

// ActivityStateChanged is published whenever the activity state changes.
type ActivityStateChanged struct {
	State ActivityState
}

func (ActivityStateChanged) Name() string { return "activity_state_changed" }

// ActiveProfileChanged is published when the host switches connection profile.
type ActiveProfileChanged struct {
	Index int
}

func (ActiveProfileChanged) Name() string { return "active_profile_changed" }
