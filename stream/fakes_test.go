package stream

import (
	"sync"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// recordingSurface remembers every frame drawn on it.
type recordingSurface struct {
	clears int
	drawn  []*Frame
}

func (s *recordingSurface) Clear() error {
	s.clears++
	return nil
}

func (s *recordingSurface) DrawBitmap(f *Frame, x, y, scale int) error {
	s.drawn = append(s.drawn, f)
	return nil
}

func (s *recordingSurface) last() *Frame {
	if len(s.drawn) == 0 {
		return nil
	}
	return s.drawn[len(s.drawn)-1]
}

type fakeDisplay struct {
	surface *recordingSurface
	err     error
	width   int
	height  int
}

func (d *fakeDisplay) NewSurface(width, height int) (Surface, error) {
	d.width, d.height = width, height
	if d.err != nil {
		return nil, d.err
	}
	d.surface = new(recordingSurface)
	return d.surface, nil
}

type fakeToken struct {
	mqtt.Token
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient implements the parts of mqtt.Client the streamer uses.
type fakeClient struct {
	mqtt.Client

	mu         sync.Mutex
	published  []published
	subscribed map[string]mqtt.MessageHandler
	publishErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{subscribed: make(map[string]mqtt.MessageHandler)}
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, _ := payload.([]byte)
	c.published = append(c.published, published{topic: topic, qos: qos, payload: data})
	return &fakeToken{err: c.publishErr}
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribed[topic] = callback
	return &fakeToken{}
}

func (c *fakeClient) messages() []published {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]published(nil), c.published...)
}

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) MessageID() uint16 { return 1 }
