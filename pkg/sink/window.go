package sink

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/lumenworks/camkit/pkg/frame"
)

// Window displays frames in a named OpenCV window.
//
// It doubles as the keypress poller for capture loops: Poll pumps the GUI
// event queue, which highgui requires for the window to repaint at all.
type Window struct {
	win    *gocv.Window
	closed bool
}

// NewWindow opens a named display window.
func NewWindow(name string) *Window {
	return &Window{win: gocv.NewWindow(name)}
}

// Put shows the frame. Fire-and-forget: the window repaints on the next
// event-queue pump.
func (w *Window) Put(f *frame.Frame) error {
	if w.closed {
		return ErrClosed
	}
	w.win.IMShow(f.Mat())
	return nil
}

// Poll waits up to the given duration for a keypress and returns its key
// code, or -1 if no key was pressed. Timeouts under one millisecond are
// rounded up; highgui treats zero as "wait forever".
func (w *Window) Poll(timeout time.Duration) int {
	if w.closed {
		return -1
	}
	ms := int(timeout.Milliseconds())
	if ms < 1 {
		ms = 1
	}
	return w.win.WaitKey(ms)
}

// Close destroys the window. Safe to call more than once.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.win.Close()
}
