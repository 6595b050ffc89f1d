package stream

import (
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// Streamer is a Display that streams the panel canvas over MQTT to an ledrx
// device each time a widget draws.
type Streamer struct {
	client mqtt.Client
	topic  string
	qos    byte

	mu     sync.Mutex
	canvas *Canvas
	cursor int
}

// NewStreamer creates an instance of a Streamer for the configured panel.
func NewStreamer(config Config, client mqtt.Client) (*Streamer, error) {
	fore, back, err := config.Colours()
	if err != nil {
		return nil, err
	}

	s := new(Streamer)
	s.client = client
	s.topic = config.Mqtt.Topics.Stream
	s.qos = config.Mqtt.QoS
	s.canvas = NewCanvas(config.Panel.Width, config.Panel.Height, fore, back)

	return s, nil
}

// NewSurface allocates the next width x height band of the panel, stacking
// surfaces from the top. It fails with ErrSurfaceUnavailable once the panel
// is full.
func (s *Streamer) NewSurface(width, height int) (Surface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	region, err := s.canvas.Region(image.Rect(0, s.cursor, width, s.cursor+height))
	if err != nil {
		return nil, err
	}
	s.cursor += height
	log.Printf("[Streamer] allocated surface %v", region.Bounds())

	return &streamSurface{streamer: s, region: region}, nil
}

// SendFrame sends the whole panel as binary over MQTT.
func (s *Streamer) SendFrame() error {
	s.mu.Lock()
	data, err := s.canvas.MarshalBinary()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return publish(s.client, s.topic, s.qos, data)
}

type streamSurface struct {
	streamer *Streamer
	region   *Region
}

func (ss *streamSurface) Clear() error {
	ss.streamer.mu.Lock()
	defer ss.streamer.mu.Unlock()
	return ss.region.Clear()
}

// DrawBitmap draws then streams the panel. Clear alone is not streamed, the
// draw that follows it is.
func (ss *streamSurface) DrawBitmap(f *Frame, x, y, scale int) error {
	ss.streamer.mu.Lock()
	err := ss.region.DrawBitmap(f, x, y, scale)
	ss.streamer.mu.Unlock()
	if err != nil {
		return err
	}
	return ss.streamer.SendFrame()
}

func publish(client mqtt.Client, topic string, qos byte, payload []byte) error {
	token := client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
