package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/camkit/pkg/frame"
)

func colorFrame(t *testing.T, w, h int) *frame.Frame {
	t.Helper()
	f := frame.NewWithSize(w, h, 3)
	// A few non-uniform pixels so conversions have something to chew on.
	f.SetPixel(0, 0, 255, 0, 0)
	f.SetPixel(1, 0, 0, 255, 0)
	f.SetPixel(2, 0, 0, 0, 255)
	f.SetPixel(3, 1, 120, 80, 200)
	return f
}

func TestGrayscaleShape(t *testing.T) {
	in := colorFrame(t, 739, 486)
	defer in.Close()

	out := Grayscale().Apply(in)
	defer out.Close()

	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, 739, out.Width())
	assert.Equal(t, 486, out.Height())

	// Input must be untouched.
	assert.Equal(t, 3, in.Channels())
}

func TestGrayscaleRoundTrip(t *testing.T) {
	in := colorFrame(t, 739, 486)
	defer in.Close()

	gray := Grayscale().Apply(in)
	defer gray.Close()
	back := ToColor().Apply(gray)
	defer back.Close()

	require.Equal(t, 3, back.Channels())
	assert.Equal(t, 739, back.Width())
	assert.Equal(t, 486, back.Height())

	// All three channels must be numerically equal at every probed pixel.
	for _, pt := range [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 1}, {738, 485}} {
		px := back.Pixel(pt[0], pt[1])
		require.Len(t, px, 3)
		assert.Equal(t, px[0], px[1], "pixel %v", pt)
		assert.Equal(t, px[1], px[2], "pixel %v", pt)
	}
}

func TestGrayscalePassthrough(t *testing.T) {
	in := frame.NewWithSize(10, 10, 1)
	defer in.Close()

	out := Grayscale().Apply(in)
	defer out.Close()

	assert.Equal(t, 1, out.Channels())
}

func TestResizeToExactShape(t *testing.T) {
	in := colorFrame(t, 739, 486)
	defer in.Close()

	out := ResizeTo(320, 200).Apply(in)
	defer out.Close()

	// Exact target regardless of source aspect ratio.
	assert.Equal(t, 320, out.Width())
	assert.Equal(t, 200, out.Height())
	assert.Equal(t, 3, out.Channels())
}

func TestResizeByFloors(t *testing.T) {
	in := colorFrame(t, 739, 486)
	defer in.Close()

	out := ResizeBy(0.5).Apply(in)
	defer out.Close()

	// floor(739*0.5) = 369, floor(486*0.5) = 243
	assert.Equal(t, 369, out.Width())
	assert.Equal(t, 243, out.Height())
}

func TestResizeByUpscale(t *testing.T) {
	in := colorFrame(t, 100, 80)
	defer in.Close()

	out := ResizeBy(1.5).Apply(in)
	defer out.Close()

	assert.Equal(t, 150, out.Width())
	assert.Equal(t, 120, out.Height())
}

func TestFlipHorizontal(t *testing.T) {
	in := frame.NewWithSize(4, 1, 3)
	defer in.Close()
	in.SetPixel(0, 0, 9, 9, 9)

	out := FlipHorizontal().Apply(in)
	defer out.Close()

	assert.Equal(t, []uint8{9, 9, 9}, out.Pixel(3, 0))
	assert.Equal(t, 4, out.Width())
	assert.Equal(t, 1, out.Height())
}

func TestChain(t *testing.T) {
	in := colorFrame(t, 100, 60)
	defer in.Close()

	out := Chain(Grayscale(), ResizeBy(0.5)).Apply(in)
	defer out.Close()

	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, 50, out.Width())
	assert.Equal(t, 30, out.Height())
}

func TestChainEmpty(t *testing.T) {
	in := colorFrame(t, 10, 10)
	defer in.Close()

	out := Chain().Apply(in)
	defer out.Close()

	assert.Equal(t, in.Width(), out.Width())
	assert.Equal(t, in.Channels(), out.Channels())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "grayscale", Grayscale().Name())
	assert.Equal(t, "resize(320x200)", ResizeTo(320, 200).Name())
	assert.Equal(t, "scale(0.5)", ResizeBy(0.5).Name())
	assert.Equal(t, "chain(grayscale,fliph)", Chain(Grayscale(), FlipHorizontal()).Name())
}
