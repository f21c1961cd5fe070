// Package frame defines the raster image unit passed between capture
// sources, transforms, and sinks.
//
// A Frame wraps an OpenCV Mat in its native byte layout: row-major,
// interleaved channels, BGR channel order. Anything that hands pixels to a
// library expecting RGB must go through ToImage, which performs the
// reordering.
package frame

import (
	"errors"
	"image"
	"time"

	"gocv.io/x/gocv"
)

// ErrClosed is returned when encoding or converting a closed Frame.
var ErrClosed = errors.New("frame: already closed")

// Frame is one captured or loaded raster image.
//
// A Frame owns its Mat. The owner must call Close exactly once when done;
// calling Close again is a no-op. Frames are not safe for concurrent use.
type Frame struct {
	mat    gocv.Mat
	stamp  time.Time
	closed bool
}

// New wraps an existing Mat. The Frame takes ownership of the Mat.
func New(mat gocv.Mat) *Frame {
	return &Frame{mat: mat, stamp: time.Now()}
}

// NewWithSize allocates a Frame of the given dimensions.
// channels must be 1 (grayscale) or 3 (BGR color).
func NewWithSize(width, height, channels int) *Frame {
	mt := gocv.MatTypeCV8UC3
	if channels == 1 {
		mt = gocv.MatTypeCV8UC1
	}
	return New(gocv.NewMatWithSize(height, width, mt))
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.mat.Cols() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.mat.Rows() }

// Channels returns the number of interleaved channels:
// 1 for grayscale, 3 for BGR color.
func (f *Frame) Channels() int { return f.mat.Channels() }

// Timestamp returns when the frame was created.
func (f *Frame) Timestamp() time.Time { return f.stamp }

// Empty reports whether the frame holds no pixel data.
func (f *Frame) Empty() bool { return f.closed || f.mat.Empty() }

// Mat exposes the underlying Mat for interop with gocv calls.
// The Frame retains ownership.
func (f *Frame) Mat() gocv.Mat { return f.mat }

// Clone returns a deep copy of the pixel data. The timestamp of the
// original capture instant is preserved.
func (f *Frame) Clone() *Frame {
	return &Frame{mat: f.mat.Clone(), stamp: f.stamp}
}

// SetPixel sets the channel values at (x, y). Values beyond the frame's
// channel count are ignored. Intended for tests and synthetic frames.
func (f *Frame) SetPixel(x, y int, vals ...uint8) {
	ch := f.Channels()
	for c := 0; c < ch && c < len(vals); c++ {
		if ch == 1 {
			f.mat.SetUCharAt(y, x, vals[c])
		} else {
			f.mat.SetUCharAt(y, x*ch+c, vals[c])
		}
	}
}

// Pixel returns the channel values at (x, y) in native (BGR) order.
func (f *Frame) Pixel(x, y int) []uint8 {
	ch := f.Channels()
	vals := make([]uint8, ch)
	for c := 0; c < ch; c++ {
		if ch == 1 {
			vals[c] = f.mat.GetUCharAt(y, x)
		} else {
			vals[c] = f.mat.GetUCharAt(y, x*ch+c)
		}
	}
	return vals
}

// ToImage converts the frame to a stdlib image.Image, reordering the
// native BGR bytes into RGB along the way.
func (f *Frame) ToImage() (image.Image, error) {
	if f.closed {
		return nil, ErrClosed
	}
	return f.mat.ToImage()
}

// EncodeJPEG encodes the frame as JPEG at the given quality (1-100).
func (f *Frame) EncodeJPEG(quality int) ([]byte, error) {
	if f.closed {
		return nil, ErrClosed
	}
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, f.mat,
		[]int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return nil, err
	}
	defer buf.Close()
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the underlying Mat. Safe to call more than once.
func (f *Frame) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.mat.Close()
}
