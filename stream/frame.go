package stream

const (
	// FrameWidth is the width of a cat frame in bitmap pixels.
	FrameWidth = 12
	// FrameHeight is the height of a cat frame in bitmap pixels.
	FrameHeight = 10

	rowBytes = (FrameWidth + 7) / 8
)

// Frame is one fixed-size bitmap of an animation. Each byte is the intensity
// of one pixel, row-major; any non-zero byte is lit.
type Frame struct {
	pixels [FrameWidth * FrameHeight]byte
}

// NewFrame creates a Frame from FrameWidth*FrameHeight intensity bytes.
func NewFrame(pixels [FrameWidth * FrameHeight]byte) *Frame {
	f := new(Frame)
	f.pixels = pixels
	return f
}

// Intensity returns the pixel byte at x, y, or zero outside the frame.
func (f *Frame) Intensity(x, y int) byte {
	if x < 0 || y < 0 || x >= FrameWidth || y >= FrameHeight {
		return 0
	}
	return f.pixels[y*FrameWidth+x]
}

// Lit reports whether the pixel at x, y is on.
func (f *Frame) Lit(x, y int) bool {
	return f.Intensity(x, y) != 0
}

// MarshalBinary packs the frame into a monochrome bitmap, one bit per pixel,
// rows padded to whole bytes and the most significant bit first.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, rowBytes*FrameHeight)
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			if f.Lit(x, y) {
				data[y*rowBytes+x/8] |= 0x80 >> (x % 8)
			}
		}
	}

	return data, nil
}
