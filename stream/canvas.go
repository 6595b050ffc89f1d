package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledcat/util"
)

// maxCanvasSize is the largest width or height the binary header can carry.
const maxCanvasSize = math.MaxUint16

// ErrSurfaceUnavailable is returned when a display cannot provide a surface.
var ErrSurfaceUnavailable = errors.New("surface unavailable")

// Surface is an area of a display that a widget draws on.
type Surface interface {
	// Clear paints the whole surface with the background colour.
	Clear() error

	// DrawBitmap paints f at x, y with each bitmap pixel scaled to a
	// scale x scale block. Anything outside the surface is clipped.
	DrawBitmap(f *Frame, x, y, scale int) error
}

// Display hands out surfaces to widgets.
type Display interface {
	NewSurface(width, height int) (Surface, error)
}

// intensityRamp maps a bitmap byte to a blend factor from background to
// foreground.
var intensityRamp = util.GenerateRamp(256)

// Canvas is a grid of RGB pixels to display on a panel.
type Canvas struct {
	bounds image.Rectangle
	pixels []colorful.Color
	fore   colorful.Color
	back   colorful.Color
}

// NewCanvas creates a Canvas filled with the background colour.
func NewCanvas(width, height int, fore, back colorful.Color) *Canvas {
	c := new(Canvas)
	c.bounds = image.Rect(0, 0, width, height)
	c.pixels = make([]colorful.Color, width*height)
	c.fore = fore
	c.back = back
	c.fill(c.bounds)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.bounds.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.bounds.Dy() }

// At returns the colour at x, y.
func (c *Canvas) At(x, y int) colorful.Color {
	if !image.Pt(x, y).In(c.bounds) {
		return c.back
	}
	return c.pixels[y*c.Width()+x]
}

// Clear paints the whole canvas with the background colour.
func (c *Canvas) Clear() error {
	c.fill(c.bounds)
	return nil
}

// DrawBitmap paints f onto the canvas.
func (c *Canvas) DrawBitmap(f *Frame, x, y, scale int) error {
	return c.draw(f, image.Pt(x, y), scale, c.bounds)
}

// Region returns a Surface covering the given area of the canvas.
func (c *Canvas) Region(r image.Rectangle) (*Region, error) {
	if r.Empty() || !r.In(c.bounds) {
		return nil, fmt.Errorf("%w: region %v outside canvas %v", ErrSurfaceUnavailable, r, c.bounds)
	}
	return &Region{canvas: c, bounds: r}, nil
}

func (c *Canvas) fill(r image.Rectangle) {
	r = r.Intersect(c.bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.pixels[y*c.Width()+x] = c.back
		}
	}
}

// draw paints f with its top-left corner at origin, clipped to clip. Unlit
// bitmap pixels leave the canvas untouched.
func (c *Canvas) draw(f *Frame, origin image.Point, scale int, clip image.Rectangle) error {
	if f == nil {
		return errors.New("draw bitmap: nil frame")
	}
	if scale <= 0 {
		return fmt.Errorf("draw bitmap: scale %d must be positive", scale)
	}

	clip = clip.Intersect(c.bounds)
	for fy := 0; fy < FrameHeight; fy++ {
		for fx := 0; fx < FrameWidth; fx++ {
			v := f.Intensity(fx, fy)
			if v == 0 {
				continue
			}
			colour := c.back.BlendRgb(c.fore, intensityRamp[v]).Clamped()
			block := image.Rect(0, 0, scale, scale).
				Add(origin).
				Add(image.Pt(fx*scale, fy*scale)).
				Intersect(clip)
			for y := block.Min.Y; y < block.Max.Y; y++ {
				for x := block.Min.X; x < block.Max.X; x++ {
					c.pixels[y*c.Width()+x] = colour
				}
			}
		}
	}

	return nil
}

// MarshalBinary converts a Canvas into binary data: little-endian width and
// height followed by one RGB triple per pixel, row-major.
func (c *Canvas) MarshalBinary() (data []byte, err error) {
	if c.Width() > maxCanvasSize || c.Height() > maxCanvasSize {
		return nil, fmt.Errorf("marshal canvas %dx%d: larger than %d", c.Width(), c.Height(), maxCanvasSize)
	}

	data = make([]byte, 4, (len(c.pixels)*3)+4)
	binary.LittleEndian.PutUint16(data, uint16(c.Width()))
	binary.LittleEndian.PutUint16(data[2:], uint16(c.Height()))
	for _, p := range c.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}

// Region is a rectangular Surface on a Canvas. Coordinates passed to
// DrawBitmap are relative to the region's top-left corner.
type Region struct {
	canvas *Canvas
	bounds image.Rectangle
}

// Bounds returns the area of the canvas the region covers.
func (r *Region) Bounds() image.Rectangle {
	return r.bounds
}

// Clear paints the region with the background colour.
func (r *Region) Clear() error {
	r.canvas.fill(r.bounds)
	return nil
}

// DrawBitmap paints f inside the region.
func (r *Region) DrawBitmap(f *Frame, x, y, scale int) error {
	return r.canvas.draw(f, r.bounds.Min.Add(image.Pt(x, y)), scale, r.bounds)
}
