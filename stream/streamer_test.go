package stream

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	c := DefaultConfig()
	c.Panel.Width = 64
	c.Panel.Height = 48
	c.Panel.Foreground = "#ffffff"
	return c
}

func TestStreamerPublishesOnDraw(t *testing.T) {
	client := newFakeClient()
	s, err := NewStreamer(testConfig(), client)
	require.NoError(t, err)

	surface, err := s.NewSurface(48, 40)
	require.NoError(t, err)

	require.NoError(t, surface.Clear())
	assert.Empty(t, client.messages())

	require.NoError(t, surface.DrawBitmap(CatFrames()[0], 0, 0, 4))
	msgs := client.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "home/ledcat/stream", msgs[0].topic)
	assert.Equal(t, byte(1), msgs[0].qos)

	data := msgs[0].payload
	require.Len(t, data, 4+64*48*3)
	assert.Equal(t, uint16(64), binary.LittleEndian.Uint16(data[0:2]))
	assert.Equal(t, uint16(48), binary.LittleEndian.Uint16(data[2:4]))

	// Canvas pixel 8,12 is lit white.
	offset := 4 + (12*64+8)*3
	assert.Equal(t, []byte{0xff, 0xff, 0xff}, data[offset:offset+3])
}

func TestStreamerStacksSurfacesUntilFull(t *testing.T) {
	s, err := NewStreamer(testConfig(), newFakeClient())
	require.NoError(t, err)

	_, err = s.NewSurface(48, 40)
	require.NoError(t, err)

	_, err = s.NewSurface(48, 10)
	assert.ErrorIs(t, err, ErrSurfaceUnavailable)

	second, err := s.NewSurface(64, 8)
	require.NoError(t, err)
	assert.Equal(t, 40, second.(*streamSurface).region.Bounds().Min.Y)

	_, err = s.NewSurface(65, 1)
	assert.ErrorIs(t, err, ErrSurfaceUnavailable)
}

func TestStreamerPublishError(t *testing.T) {
	client := newFakeClient()
	client.publishErr = errors.New("not connected")
	s, err := NewStreamer(testConfig(), client)
	require.NoError(t, err)

	surface, err := s.NewSurface(48, 40)
	require.NoError(t, err)
	err = surface.DrawBitmap(CatFrames()[0], 0, 0, 4)
	assert.ErrorContains(t, err, "not connected")
}

func TestNewStreamerRejectsBadColour(t *testing.T) {
	c := testConfig()
	c.Panel.Background = "black"
	_, err := NewStreamer(c, newFakeClient())
	assert.Error(t, err)
}
