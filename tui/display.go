// Package tui previews widgets in the terminal.
package tui

import (
	"image"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledcat/stream"
)

// Display is a stream.Display backed by an in-memory canvas. Every draw
// sends a FrameMsg with the rendered canvas to the attached program.
type Display struct {
	mu     sync.Mutex
	canvas *stream.Canvas
	cursor int
	send   func(tea.Msg)
}

// FrameMsg carries a freshly rendered canvas.
type FrameMsg struct {
	View string
}

// NewDisplay creates a width x height terminal display.
func NewDisplay(width, height int, fore, back colorful.Color) *Display {
	d := new(Display)
	d.canvas = stream.NewCanvas(width, height, fore, back)
	return d
}

// Attach routes redraws to send, normally tea.Program.Send.
func (d *Display) Attach(send func(tea.Msg)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.send = send
}

// NewSurface allocates the next band of the display.
func (d *Display) NewSurface(width, height int) (stream.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	region, err := d.canvas.Region(image.Rect(0, d.cursor, width, d.cursor+height))
	if err != nil {
		return nil, err
	}
	d.cursor += height
	return &surface{display: d, region: region}, nil
}

// View renders the whole display.
func (d *Display) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Render(d.canvas)
}

type surface struct {
	display *Display
	region  *stream.Region
}

func (s *surface) Clear() error {
	s.display.mu.Lock()
	defer s.display.mu.Unlock()
	return s.region.Clear()
}

func (s *surface) DrawBitmap(f *stream.Frame, x, y, scale int) error {
	s.display.mu.Lock()
	if err := s.region.DrawBitmap(f, x, y, scale); err != nil {
		s.display.mu.Unlock()
		return err
	}
	view := Render(s.display.canvas)
	send := s.display.send
	s.display.mu.Unlock()

	if send != nil {
		send(FrameMsg{View: view})
	}
	return nil
}

// Render draws a canvas with half blocks, two pixel rows per line.
func Render(c *stream.Canvas) string {
	var b strings.Builder
	for y := 0; y < c.Height(); y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.Width(); x++ {
			top := c.At(x, y)
			bottom := c.At(x, y+1)
			if y+1 >= c.Height() {
				bottom = top
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Clamped().Hex())).
				Background(lipgloss.Color(bottom.Clamped().Hex()))
			b.WriteString(style.Render("▀"))
		}
	}
	return b.String()
}
