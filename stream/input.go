package stream

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledcat/activity"
	"github.com/matt-g-everett/ledcat/event"
)

// InputMessage is a JSON message from the keyboard on the input topic.
type InputMessage struct {
	Type  string `json:"type"`
	State string `json:"state,omitempty"`
	Index int    `json:"index,omitempty"`
}

// InputListener turns input topic messages into activity and profile events.
type InputListener struct {
	config  Config
	client  mqtt.Client
	monitor *activity.Monitor
	bus     *event.Bus
}

// NewInputListener creates an InputListener.
func NewInputListener(config Config, client mqtt.Client, monitor *activity.Monitor, bus *event.Bus) *InputListener {
	l := new(InputListener)
	l.config = config
	l.client = client
	l.monitor = monitor
	l.bus = bus
	return l
}

// Subscribe listens on the input topic. Call it again after a reconnect.
func (l *InputListener) Subscribe() error {
	token := l.client.Subscribe(l.config.Mqtt.Topics.Input, l.config.Mqtt.QoS, l.handleClientMessages)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", l.config.Mqtt.Topics.Input, token.Error())
	}
	log.Printf("[Input] subscribed to %s", l.config.Mqtt.Topics.Input)
	return nil
}

func (l *InputListener) handleClientMessages(client mqtt.Client, msg mqtt.Message) {
	if err := l.Dispatch(msg.Payload()); err != nil {
		log.Printf("[Input] ignoring msg %d on %s: %v", msg.MessageID(), msg.Topic(), err)
	}
}

// Dispatch decodes one input message and acts on it.
func (l *InputListener) Dispatch(payload []byte) error {
	var message InputMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	switch message.Type {
	case "key":
		l.monitor.Touch()
	case "activity":
		state, err := event.ParseActivityState(message.State)
		if err != nil {
			return err
		}
		l.monitor.Set(state)
	case "profile":
		l.bus.Publish(event.ActiveProfileChanged{Index: message.Index})
	default:
		return fmt.Errorf("unknown message type %q", message.Type)
	}
	return nil
}
