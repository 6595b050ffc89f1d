package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus(nil)
	var got []string

	bus.Subscribe("first", func(ev Event) { got = append(got, "first:"+ev.Name()) })
	bus.Subscribe("second", func(ev Event) { got = append(got, "second:"+ev.Name()) })

	bus.Publish(ActivityStateChanged{State: Idle})
	assert.Equal(t, []string{
		"first:activity_state_changed",
		"second:activity_state_changed",
	}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	unsubscribe := bus.Subscribe("cat", func(Event) { calls++ })
	require.Equal(t, 1, bus.Subscribers())

	unsubscribe()
	unsubscribe()
	bus.Publish(ActiveProfileChanged{Index: 2})

	assert.Zero(t, calls)
	assert.Zero(t, bus.Subscribers())
}

func TestBusUsesExecutor(t *testing.T) {
	var queued []func()
	bus := NewBus(func(fn func()) { queued = append(queued, fn) })

	var got Event
	bus.Subscribe("cat", func(ev Event) { got = ev })
	bus.Publish(ActivityStateChanged{State: Sleep})

	require.Nil(t, got)
	require.Len(t, queued, 1)
	queued[0]()
	assert.Equal(t, ActivityStateChanged{State: Sleep}, got)
}

func TestParseActivityState(t *testing.T) {
	tests := []struct {
		in      string
		want    ActivityState
		wantErr bool
	}{
		{"active", Active, false},
		{" IDLE ", Idle, false},
		{"sleep", Sleep, false},
		{"asleep", Active, true},
		{"", Active, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseActivityState(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}
