package stream

import (
	"testing"

	"github.com/matt-g-everett/ledcat/activity"
	"github.com/matt-g-everett/ledcat/event"
	"github.com/matt-g-everett/ledcat/workq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListener(t *testing.T) (*InputListener, *fakeClient, *activity.Monitor, *workq.Sim, *[]event.Event) {
	t.Helper()
	sim := workq.NewSim()
	bus := event.NewBus(sim.Submit)
	var events []event.Event
	bus.Subscribe("recorder", func(ev event.Event) { events = append(events, ev) })

	cfg := testConfig()
	monitor := activity.NewMonitor(bus, sim, cfg.InitialActivity(), cfg.IdleTimeout(), cfg.SleepTimeout())
	monitor.Start()
	sim.Flush()

	client := newFakeClient()
	l := NewInputListener(cfg, client, monitor, bus)
	require.NoError(t, l.Subscribe())
	return l, client, monitor, sim, &events
}

func TestInputListenerActivityMessages(t *testing.T) {
	l, client, monitor, sim, events := newTestListener(t)

	handler := client.subscribed["home/ledcat/input"]
	require.NotNil(t, handler)

	handler(client, &fakeMessage{topic: "home/ledcat/input", payload: []byte(`{"type":"activity","state":"idle"}`)})
	sim.Flush()
	assert.Equal(t, event.Idle, monitor.State())

	require.NoError(t, l.Dispatch([]byte(`{"type":"key"}`)))
	sim.Flush()
	assert.Equal(t, event.Active, monitor.State())

	assert.Equal(t, []event.Event{
		event.ActivityStateChanged{State: event.Idle},
		event.ActivityStateChanged{State: event.Active},
	}, *events)
}

func TestInputListenerProfileMessage(t *testing.T) {
	l, _, _, sim, events := newTestListener(t)

	require.NoError(t, l.Dispatch([]byte(`{"type":"profile","index":2}`)))
	sim.Flush()
	assert.Equal(t, []event.Event{event.ActiveProfileChanged{Index: 2}}, *events)
}

func TestInputListenerRejectsBadMessages(t *testing.T) {
	l, client, monitor, sim, events := newTestListener(t)

	assert.Error(t, l.Dispatch([]byte(`not json`)))
	assert.Error(t, l.Dispatch([]byte(`{"type":"mouse"}`)))
	assert.ErrorIs(t, l.Dispatch([]byte(`{"type":"activity","state":"dozing"}`)), event.ErrInvalidState)

	// Logged and dropped by the subscription handler.
	client.subscribed["home/ledcat/input"](client, &fakeMessage{payload: []byte(`{}`)})

	sim.Flush()
	assert.Equal(t, event.Active, monitor.State())
	assert.Empty(t, *events)
}
