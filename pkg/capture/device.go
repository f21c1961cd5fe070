// Package capture acquires frames from cameras, video files, and stream
// URLs, and exposes the device property surface for tuning them.
package capture

import (
	"errors"
	"fmt"
	"strconv"

	"gocv.io/x/gocv"

	"github.com/lumenworks/camkit/pkg/frame"
)

// ErrDeviceClosed is returned when operating on a closed device.
var ErrDeviceClosed = errors.New("capture: device closed")

// Device is an open capture source. It produces a lazy, unbounded sequence
// of frames; each Read either yields a frame or reports end-of-stream.
//
// A Device is owned by a single goroutine. Close is idempotent and must be
// called on every exit path.
type Device struct {
	source string
	cap    *gocv.VideoCapture
	closed bool
}

// Open opens a capture source. A numeric string selects a camera index,
// anything else is treated as a file path or stream URL.
func Open(source string) (*Device, error) {
	if idx, err := strconv.Atoi(source); err == nil {
		return OpenIndex(idx)
	}
	return OpenFile(source)
}

// OpenIndex opens the camera at the given device index.
func OpenIndex(index int) (*Device, error) {
	cap, err := gocv.VideoCaptureDevice(index)
	if err != nil {
		return nil, fmt.Errorf("capture: open device %d: %w", index, err)
	}
	return &Device{source: strconv.Itoa(index), cap: cap}, nil
}

// OpenFile opens a video file or stream URL.
func OpenFile(path string) (*Device, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %q: %w", path, err)
	}
	return &Device{source: path, cap: cap}, nil
}

// Source returns the source string the device was opened with.
func (d *Device) Source() string { return d.source }

// IsOpened reports whether the underlying capture handle is usable.
func (d *Device) IsOpened() bool {
	return !d.closed && d.cap.IsOpened()
}

// Read pulls the next frame. The second return value is false on
// end-of-stream or pull failure; the two cases are deliberately not
// distinguished since either way the caller's loop is over.
//
// The returned frame is owned by the caller.
func (d *Device) Read() (*frame.Frame, bool) {
	if d.closed {
		return nil, false
	}
	mat := gocv.NewMat()
	if ok := d.cap.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, false
	}
	return frame.New(mat), true
}

// Close releases the capture handle. Safe to call more than once.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.cap.Close()
}
