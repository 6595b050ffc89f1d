package stream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledcat/event"
	"gopkg.in/yaml.v2"
)

// Config holds everything read from the YAML config file.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		QoS      byte   `yaml:"qos"`
		Topics   struct {
			Stream string `yaml:"stream"`
			Input  string `yaml:"input"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`

	Panel struct {
		Width      int    `yaml:"width"`
		Height     int    `yaml:"height"`
		Foreground string `yaml:"foreground"`
		Background string `yaml:"background"`
	} `yaml:"panel"`

	Animation struct {
		IntervalMs   int  `yaml:"intervalMs"`
		Scale        int  `yaml:"scale"`
		X            int  `yaml:"x"`
		Y            int  `yaml:"y"`
		StartRunning bool `yaml:"startRunning"`
	} `yaml:"animation"`

	Activity struct {
		IdleTimeoutMs  int `yaml:"idleTimeoutMs"`
		SleepTimeoutMs int `yaml:"sleepTimeoutMs"`
	} `yaml:"activity"`

	API struct {
		Listen       string   `yaml:"listen"`
		AllowOrigins []string `yaml:"allowOrigins"`
	} `yaml:"api"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.URL = "tcp://localhost:1883"
	c.Mqtt.ClientID = "ledcat"
	c.Mqtt.QoS = 1
	c.Mqtt.Topics.Stream = "home/ledcat/stream"
	c.Mqtt.Topics.Input = "home/ledcat/input"
	c.Panel.Width = 128
	c.Panel.Height = 64
	c.Panel.Foreground = "#808080"
	c.Panel.Background = "#000000"
	c.Animation.IntervalMs = 1000
	c.Animation.Scale = 4
	c.Animation.StartRunning = true
	c.Activity.IdleTimeoutMs = 30000
	c.Activity.SleepTimeoutMs = 900000
	c.API.Listen = ":3000"
	c.API.AllowOrigins = []string{"*"}
	return c
}

// ReadConfig decodes YAML from r over the defaults.
func ReadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// LoadConfig reads the config file at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return ReadConfig(f)
}

// Validate checks that the config can drive a panel.
func (c Config) Validate() error {
	if c.Panel.Width <= 0 || c.Panel.Height <= 0 {
		return fmt.Errorf("panel size %dx%d: must be positive", c.Panel.Width, c.Panel.Height)
	}
	if c.Panel.Width > maxCanvasSize || c.Panel.Height > maxCanvasSize {
		return fmt.Errorf("panel size %dx%d: must be at most %d", c.Panel.Width, c.Panel.Height, maxCanvasSize)
	}
	if c.Animation.IntervalMs <= 0 {
		return fmt.Errorf("animation interval %dms: must be positive", c.Animation.IntervalMs)
	}
	if c.Animation.Scale <= 0 {
		return fmt.Errorf("animation scale %d: must be positive", c.Animation.Scale)
	}
	if c.Activity.IdleTimeoutMs <= 0 {
		return fmt.Errorf("activity idle timeout %dms: must be positive", c.Activity.IdleTimeoutMs)
	}
	if c.Activity.SleepTimeoutMs < 0 {
		return fmt.Errorf("activity sleep timeout %dms: must not be negative", c.Activity.SleepTimeoutMs)
	}
	if c.Mqtt.QoS > 2 {
		return fmt.Errorf("mqtt qos %d: must be 0, 1 or 2", c.Mqtt.QoS)
	}
	if len(c.API.AllowOrigins) == 0 {
		return errors.New("api allowOrigins: at least one origin required")
	}
	if _, _, err := c.Colours(); err != nil {
		return err
	}
	return nil
}

// Colours parses the panel foreground and background colours.
func (c Config) Colours() (fore, back colorful.Color, err error) {
	fore, err = colorful.Hex(c.Panel.Foreground)
	if err != nil {
		return fore, back, fmt.Errorf("panel foreground %q: %w", c.Panel.Foreground, err)
	}
	back, err = colorful.Hex(c.Panel.Background)
	if err != nil {
		return fore, back, fmt.Errorf("panel background %q: %w", c.Panel.Background, err)
	}
	return fore, back, nil
}

// Interval returns the time between animation frames.
func (c Config) Interval() time.Duration {
	return time.Duration(c.Animation.IntervalMs) * time.Millisecond
}

// IdleTimeout returns how long without input before the device goes idle.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Activity.IdleTimeoutMs) * time.Millisecond
}

// SleepTimeout returns how long without input before the device sleeps.
func (c Config) SleepTimeout() time.Duration {
	return time.Duration(c.Activity.SleepTimeoutMs) * time.Millisecond
}

// InitialActivity is the activity state the device boots in. A cat that
// starts paused waits for input, so the device starts Idle.
func (c Config) InitialActivity() event.ActivityState {
	if c.Animation.StartRunning {
		return event.Active
	}
	return event.Idle
}

// CatOptions builds the widget options from the animation section.
func (c Config) CatOptions() CatOptions {
	return CatOptions{
		Interval:     c.Interval(),
		Scale:        c.Animation.Scale,
		X:            c.Animation.X,
		Y:            c.Animation.Y,
		StartRunning: c.Animation.StartRunning,
	}
}
