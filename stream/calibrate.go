package stream

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// Calibrate streams a sequence of striped test patterns so that the panel's
// pixel order can be checked. Each step halves the stripe length, so after
// ceil(log2(pixels)) steps every pixel has been identified by its on/off code.
type Calibrate struct {
	config Config
	client mqtt.Client
	step   time.Duration
}

// NewCalibrate creates a Calibrate that shows each pattern for 200ms.
func NewCalibrate(config Config, client mqtt.Client) *Calibrate {
	c := new(Calibrate)
	c.config = config
	c.client = client
	c.step = 200 * time.Millisecond
	return c
}

// Steps returns the stripe length exponents in display order.
func (c *Calibrate) Steps() []int {
	pixelCount := c.config.Panel.Width * c.config.Panel.Height
	litLength := int(math.Ceil(math.Log2(float64(pixelCount))))
	steps := make([]int, 0, litLength+1)
	for ; litLength >= 0; litLength-- {
		steps = append(steps, litLength)
	}
	return steps
}

// Pattern returns a canvas with alternating lit and unlit stripes of
// 2^litLength pixels along the row-major pixel order.
func (c *Calibrate) Pattern(litLength int) (*Canvas, error) {
	fore, back, err := c.config.Colours()
	if err != nil {
		return nil, err
	}

	canvas := NewCanvas(c.config.Panel.Width, c.config.Panel.Height, fore, back)
	litlen := 1 << litLength
	for i := range canvas.pixels {
		if (i/litlen)%2 == 0 {
			canvas.pixels[i] = fore
		}
	}
	return canvas, nil
}

// Run streams every pattern in turn, stopping early if ctx is done.
func (c *Calibrate) Run(ctx context.Context) error {
	for _, litLength := range c.Steps() {
		canvas, err := c.Pattern(litLength)
		if err != nil {
			return err
		}
		data, err := canvas.MarshalBinary()
		if err != nil {
			return err
		}
		if err := publish(c.client, c.config.Mqtt.Topics.Stream, c.config.Mqtt.QoS, data); err != nil {
			return err
		}
		log.Printf("[Calibrate] lit length: %d", 1<<litLength)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.step):
		}
	}
	return nil
}
