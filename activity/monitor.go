// Package activity tracks whether the device is in use and publishes
// activity state changes on the event bus.
package activity

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/matt-g-everett/ledcat/event"
	"github.com/matt-g-everett/ledcat/workq"
)

// Monitor moves the device from Active to Idle and then Sleep when no input
// arrives for the configured timeouts. Any input makes it Active again.
type Monitor struct {
	bus          *event.Bus
	sched        workq.Scheduler
	check        workq.Delayable
	idleTimeout  time.Duration
	sleepTimeout time.Duration
	state        atomic.Int32
}

// NewMonitor creates a Monitor in the initial state. A zero sleepTimeout, or
// one not longer than idleTimeout, disables Sleep.
func NewMonitor(bus *event.Bus, sched workq.Scheduler, initial event.ActivityState, idleTimeout, sleepTimeout time.Duration) *Monitor {
	m := new(Monitor)
	m.bus = bus
	m.sched = sched
	m.idleTimeout = idleTimeout
	m.sleepTimeout = sleepTimeout
	m.check = sched.NewDelayable(m.expire)
	m.state.Store(int32(initial))
	return m
}

// Start arms the timer for the next step down from the current state.
func (m *Monitor) Start() {
	m.sched.Submit(func() {
		switch m.State() {
		case event.Active:
			m.check.Reschedule(m.idleTimeout)
		case event.Idle:
			if m.sleepTimeout > m.idleTimeout {
				m.check.Reschedule(m.sleepTimeout - m.idleTimeout)
			}
		}
	})
}

// Stop disarms the idle timer. The current state is kept.
func (m *Monitor) Stop() {
	m.sched.Submit(m.check.Cancel)
}

// Armed reports whether a state change is scheduled.
func (m *Monitor) Armed() bool {
	return m.check.Pending()
}

// State returns the current activity state. Safe from any goroutine.
func (m *Monitor) State() event.ActivityState {
	return event.ActivityState(m.state.Load())
}

// Touch records input on the device.
func (m *Monitor) Touch() {
	m.sched.Submit(m.touch)
}

// Set forces the activity state, as reported by an external source.
func (m *Monitor) Set(state event.ActivityState) {
	m.sched.Submit(func() {
		if state == event.Active {
			m.touch()
			return
		}
		m.check.Cancel()
		m.transition(state)
	})
}

func (m *Monitor) touch() {
	m.check.Reschedule(m.idleTimeout)
	m.transition(event.Active)
}

func (m *Monitor) expire() {
	switch m.State() {
	case event.Active:
		m.transition(event.Idle)
		if m.sleepTimeout > m.idleTimeout {
			m.check.Reschedule(m.sleepTimeout - m.idleTimeout)
		}
	case event.Idle:
		m.transition(event.Sleep)
	}
}

func (m *Monitor) transition(state event.ActivityState) {
	prev := event.ActivityState(m.state.Swap(int32(state)))
	if prev == state {
		return
	}
	log.Printf("[Activity] %s -> %s", prev, state)
	m.bus.Publish(event.ActivityStateChanged{State: state})
}
