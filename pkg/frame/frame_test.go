package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithSizeColor(t *testing.T) {
	f := NewWithSize(739, 486, 3)
	defer f.Close()

	assert.Equal(t, 739, f.Width())
	assert.Equal(t, 486, f.Height())
	assert.Equal(t, 3, f.Channels())
	assert.False(t, f.Empty())
}

func TestNewWithSizeGray(t *testing.T) {
	f := NewWithSize(64, 48, 1)
	defer f.Close()

	assert.Equal(t, 1, f.Channels())
	assert.Equal(t, 64, f.Width())
	assert.Equal(t, 48, f.Height())
}

func TestPixelRoundTrip(t *testing.T) {
	f := NewWithSize(8, 8, 3)
	defer f.Close()

	f.SetPixel(3, 2, 10, 20, 30)

	got := f.Pixel(3, 2)
	require.Len(t, got, 3)
	assert.Equal(t, []uint8{10, 20, 30}, got)
}

func TestClone(t *testing.T) {
	f := NewWithSize(16, 12, 3)
	defer f.Close()
	f.SetPixel(0, 0, 1, 2, 3)

	c := f.Clone()
	defer c.Close()

	assert.Equal(t, f.Width(), c.Width())
	assert.Equal(t, f.Height(), c.Height())
	assert.Equal(t, []uint8{1, 2, 3}, c.Pixel(0, 0))

	// Mutating the clone must not touch the original.
	c.SetPixel(0, 0, 9, 9, 9)
	assert.Equal(t, []uint8{1, 2, 3}, f.Pixel(0, 0))
}

func TestCloseIdempotent(t *testing.T) {
	f := NewWithSize(4, 4, 1)
	f.Close()
	f.Close() // must not panic

	assert.True(t, f.Empty())
}

func TestEncodeJPEG(t *testing.T) {
	f := NewWithSize(32, 24, 3)
	defer f.Close()

	data, err := f.EncodeJPEG(85)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// JPEG SOI marker
	assert.Equal(t, byte(0xFF), data[0])
	assert.Equal(t, byte(0xD8), data[1])
}

func TestEncodeJPEGClosed(t *testing.T) {
	f := NewWithSize(4, 4, 3)
	f.Close()

	_, err := f.EncodeJPEG(85)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestToImage(t *testing.T) {
	f := NewWithSize(20, 10, 3)
	defer f.Close()

	img, err := f.ToImage()
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 20, bounds.Dx())
	assert.Equal(t, 10, bounds.Dy())
}
